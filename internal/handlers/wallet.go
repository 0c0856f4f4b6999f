package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

type WalletHandler struct {
	ledger      *services.Ledger
	authService *services.AuthService
}

func NewWalletHandler(ledger *services.Ledger, authService *services.AuthService) *WalletHandler {
	return &WalletHandler{ledger: ledger, authService: authService}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")

	balance, err := h.ledger.Balance(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get balance",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
	})
}

// Deposit files a pending deposit for admin review. No funds move until
// the proof of payment is approved.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	tx, err := h.ledger.RecordDeposit(userID, req.Amount, req.Method, req.SenderNumber, req.SenderName, req.Screenshot)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"transaction": tx,
	})
}

// Withdraw requires completed KYC before any ledger call, then files a
// pending withdrawal that reserves the funds immediately.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	user, err := h.authService.User(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if !user.Kyc.Complete() {
		c.JSON(http.StatusForbidden, gin.H{"error": "KYC verification required before withdrawal"})
		return
	}

	tx, err := h.ledger.RecordWithdrawal(userID, req.Amount, req.WalletNumber, req.Method)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrInsufficientFunds) {
			status = http.StatusPaymentRequired
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"transaction": tx,
	})
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")

	txs, err := h.ledger.UserTransactions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get transactions",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": txs,
		"count":        len(txs),
	})
}
