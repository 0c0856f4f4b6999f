package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	jwtService  *services.JWTService
	history     *services.History
}

func NewAuthHandler(authService *services.AuthService, jwtService *services.JWTService, history *services.History) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		history:     history,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.authService.Register(req.Name, req.Phone, req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrPhoneTaken) || errors.Is(err, services.ErrEmailTaken) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.authService.Login(req.Identifier, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.authService.Logout(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	h.history.Clear(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if c.GetBool("is_admin") {
		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{"id": userID, "name": "Administrator", "is_admin": true},
		})
		return
	}

	user, err := h.authService.User(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) UpdateKyc(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.KycRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.authService.UpdateKyc(userID, &models.KycDetails{
		NationalIDType:   req.NationalIDType,
		NationalIDNumber: req.NationalIDNumber,
		Address:          req.Address,
		IssuedDate:       req.IssuedDate,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
