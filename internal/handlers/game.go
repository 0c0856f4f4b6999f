package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nepbet-backend/internal/games"
	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

type GameHandler struct {
	crash    *games.CrashEngine
	mines    *games.MinesEngine
	dice     *games.DiceEngine
	crystals *games.CrystalsEngine
	solitra  *games.SolitraEngine
	vampire  *games.VampireEngine
	history  *services.History
}

type Engines struct {
	Crash    *games.CrashEngine
	Mines    *games.MinesEngine
	Dice     *games.DiceEngine
	Crystals *games.CrystalsEngine
	Solitra  *games.SolitraEngine
	Vampire  *games.VampireEngine
}

func NewGameHandler(e Engines, history *services.History) *GameHandler {
	return &GameHandler{
		crash:    e.Crash,
		mines:    e.Mines,
		dice:     e.Dice,
		crystals: e.Crystals,
		solitra:  e.Solitra,
		vampire:  e.Vampire,
		history:  history,
	}
}

func (h *GameHandler) StartCrash(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	round, err := h.crash.Start(userID, req.Amount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game": gin.H{
			"id":         round.ID,
			"game_type":  models.GameTypeCrash,
			"bet_amount": round.Stake,
			"status":     "active",
			"started_at": round.StartedAt,
		},
	})
}

func (h *GameHandler) CashoutCrash(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.crash.Cashout(userID, req.GameID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) StartMines(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.MinesBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.mines.Start(userID, req.Amount, req.Mines)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    result,
	})
}

func (h *GameHandler) RevealMine(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.mines.Reveal(userID, req.GameID, req.Position)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) CashoutMines(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.mines.Cashout(userID, req.GameID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) PlayDice(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.DicePlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.dice.Play(userID, req.Amount, req.Choice)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) SpinCrystals(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.crystals.Spin(userID, req.Amount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) StartSolitra(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.solitra.Start(userID, req.Amount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GuessSolitra(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.SolitraGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.solitra.Guess(userID, req.GameID, req.Guess)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) CashoutSolitra(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.solitra.Cashout(userID, req.GameID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) SmashVampire(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.vampire.Smash(userID, req.Amount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	sessions := h.history.ForUser(userID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"details": err.Error(),
	})
}

func gameError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, games.ErrRoundNotFound):
		status = http.StatusNotFound
	case errors.Is(err, games.ErrNotYourRound):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
