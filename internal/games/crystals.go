package games

import (
	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

// Crystal symbols. The pool is stacked with bombs and clovers so most
// spins land on a zero-payout middle row.
const (
	SymbolDiamond = "💎"
	SymbolOrb     = "🔮"
	SymbolAmber   = "🔶"
	SymbolMoon    = "🌙"
	SymbolStar    = "⭐"
	SymbolClover  = "🍀"
	SymbolBomb    = "💣"
)

var crystalWeights = []weightedSymbol{
	{SymbolDiamond, 1},
	{SymbolOrb, 2},
	{SymbolAmber, 3},
	{SymbolMoon, 4},
	{SymbolStar, 6},
	{SymbolClover, 15},
	{SymbolBomb, 20},
}

// Per-symbol payout when the middle row is a strict three-of-a-kind.
// No partial-match payouts.
var crystalPayouts = map[string]float64{
	SymbolDiamond: 15,
	SymbolOrb:     8,
	SymbolAmber:   4,
	SymbolMoon:    2,
	SymbolStar:    1,
}

type CrystalsResult struct {
	Grid       []string        `json:"grid"`
	WinLine    []int           `json:"win_line,omitempty"`
	Win        bool            `json:"win"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
}

type CrystalsEngine struct {
	*table
	pool *weightedPool
}

func NewCrystalsEngine(d Deps) *CrystalsEngine {
	return &CrystalsEngine{
		table: newTable(d),
		pool:  newWeightedPool(crystalWeights),
	}
}

// Spin fills the 3×3 grid with independent weighted draws and pays only
// when the three middle-row cells match.
func (e *CrystalsEngine) Spin(userID int64, amount decimal.Decimal) (*CrystalsResult, error) {
	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	grid := make([]string, 9)
	for i := range grid {
		grid[i] = e.pool.draw(e.table)
	}

	result := &CrystalsResult{Grid: grid}

	// Middle row: indices 3, 4, 5.
	if grid[3] == grid[4] && grid[4] == grid[5] {
		if mult := crystalPayouts[grid[3]]; mult > 0 {
			payout, err := e.settleWin(userID, models.GameTypeCrystals, amount, mult)
			if err != nil {
				return nil, err
			}
			result.Win = true
			result.WinLine = []int{3, 4, 5}
			result.Multiplier = mult
			result.Payout = payout
		}
	}

	return result, nil
}
