package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

type SupportHandler struct {
	supportService *services.SupportService
	authService    *services.AuthService
	ledger         *services.Ledger
}

func NewSupportHandler(supportService *services.SupportService, authService *services.AuthService, ledger *services.Ledger) *SupportHandler {
	return &SupportHandler{
		supportService: supportService,
		authService:    authService,
		ledger:         ledger,
	}
}

func (h *SupportHandler) CreateTicket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.authService.User(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	ticket, err := h.supportService.CreateTicket(user, req.Subject, req.Message, req.Priority)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"ticket":  ticket,
	})
}

// Chat answers through the configured support agent. The agent sees the
// user's current balance so it can answer account questions; failures
// degrade to a fixed fallback message, never an error response.
func (h *SupportHandler) Chat(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.SupportChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	chatContext := ""
	if user, err := h.authService.User(userID); err == nil {
		balance, _ := h.ledger.Balance(userID)
		chatContext = fmt.Sprintf("User: %s, Balance: NPR %s", user.Name, balance.StringFixed(2))
	}

	reply := h.supportService.Chat(c.Request.Context(), req.Message, chatContext)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reply":   reply,
	})
}
