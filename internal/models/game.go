package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GameType string

const (
	GameTypeCrash    GameType = "CRASH"
	GameTypeMines    GameType = "MINES"
	GameTypeDice7    GameType = "DICE_7"
	GameTypeCrystals GameType = "CRYSTALS"
	GameTypeSolitra  GameType = "SOLITRA"
	GameTypeVampire  GameType = "VAMPIRE"
)

// GameSession is the in-memory record of one settled round. It is written
// on win settlement, never mutated, and not persisted across restarts.
type GameSession struct {
	ID         string          `json:"id"`
	UserID     int64           `json:"user_id"`
	GameType   GameType        `json:"game_type"`
	BetAmount  decimal.Decimal `json:"bet_amount"`
	WinAmount  decimal.Decimal `json:"win_amount"`
	Multiplier float64         `json:"multiplier"`
	Timestamp  time.Time       `json:"timestamp"`
}
