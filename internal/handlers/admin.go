package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

type AdminHandler struct {
	ledger         *services.Ledger
	authService    *services.AuthService
	supportService *services.SupportService
}

func NewAdminHandler(ledger *services.Ledger, authService *services.AuthService, supportService *services.SupportService) *AdminHandler {
	return &AdminHandler{
		ledger:         ledger,
		authService:    authService,
		supportService: supportService,
	}
}

func (h *AdminHandler) PendingDeposits(c *gin.Context) {
	txs, err := h.ledger.Pending(models.TransactionTypeDeposit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"deposits": txs,
		"count":    len(txs),
	})
}

func (h *AdminHandler) PendingWithdrawals(c *gin.Context) {
	txs, err := h.ledger.Pending(models.TransactionTypeWithdrawal)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"withdrawals": txs,
		"count":       len(txs),
	})
}

// ApproveTransaction is idempotent: approving a transaction that is
// already settled changes nothing and still returns OK.
func (h *AdminHandler) ApproveTransaction(c *gin.Context) {
	txID := c.Param("id")
	if txID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction ID required"})
		return
	}

	if err := h.ledger.Approve(txID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) RejectTransaction(c *gin.Context) {
	txID := c.Param("id")
	if txID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction ID required"})
		return
	}

	if err := h.ledger.Reject(txID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.Users()
	if err != nil {
		internalError(c, err)
		return
	}

	public := make([]*models.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   public,
		"count":   len(public),
	})
}

// SearchTransactions filters the full cross-user log by transaction ID,
// sender number, or user ID. An empty filter returns everything.
func (h *AdminHandler) SearchTransactions(c *gin.Context) {
	filter := c.Query("q")

	txs, err := h.ledger.Search(filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": txs,
		"count":        len(txs),
	})
}

func (h *AdminHandler) ListTickets(c *gin.Context) {
	tickets, err := h.supportService.Tickets()
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tickets": tickets,
		"count":   len(tickets),
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal error",
		"details": err.Error(),
	})
}
