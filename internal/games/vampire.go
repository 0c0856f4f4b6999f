package games

import (
	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

const (
	SymbolVampire = "🧛"
	SymbolBat     = "🦇"
	SymbolBlood   = "🩸"
	SymbolWolf    = "🐺"
	SymbolSkull   = "💀"
	SymbolUrn     = "⚱️"
	SymbolWeb     = "🕸️"
)

// Filler symbols carry triple weight to dilute the pool.
var vampireWeights = []weightedSymbol{
	{SymbolVampire, 1},
	{SymbolBat, 1},
	{SymbolBlood, 1},
	{SymbolWolf, 1},
	{SymbolSkull, 3},
	{SymbolUrn, 3},
	{SymbolWeb, 3},
}

// Win conditions are symbol counts across the whole 3×3 grid, checked in
// priority order; the first satisfied condition pays, no stacking.
var vampireConditions = []struct {
	symbol     string
	count      int
	multiplier float64
	label      string
}{
	{SymbolVampire, 3, 5.0, "VAMPIRE JACKPOT!"},
	{SymbolBat, 4, 3.0, "BAT SWARM!"},
	{SymbolBlood, 4, 2.0, "BLOOD THIRST!"},
	{SymbolWolf, 4, 1.5, "WOLF PACK!"},
}

type VampireResult struct {
	Grid       []string        `json:"grid"`
	Win        bool            `json:"win"`
	Message    string          `json:"message,omitempty"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
}

type VampireEngine struct {
	*table
	pool *weightedPool
}

func NewVampireEngine(d Deps) *VampireEngine {
	return &VampireEngine{
		table: newTable(d),
		pool:  newWeightedPool(vampireWeights),
	}
}

func (e *VampireEngine) Smash(userID int64, amount decimal.Decimal) (*VampireResult, error) {
	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	grid := make([]string, 9)
	counts := make(map[string]int)
	for i := range grid {
		grid[i] = e.pool.draw(e.table)
		counts[grid[i]]++
	}

	result := &VampireResult{Grid: grid}

	for _, cond := range vampireConditions {
		if counts[cond.symbol] < cond.count {
			continue
		}
		payout, err := e.settleWin(userID, models.GameTypeVampire, amount, cond.multiplier)
		if err != nil {
			return nil, err
		}
		result.Win = true
		result.Message = cond.label
		result.Multiplier = cond.multiplier
		result.Payout = payout
		break
	}

	return result, nil
}
