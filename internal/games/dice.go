package games

import (
	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

const (
	DiceChoiceUnder = "UNDER"
	DiceChoiceExact = "EXACT"
	DiceChoiceOver  = "OVER"
)

// Published payouts sit well below fair odds (fair is ~2.33x for
// under/over and 6x for exact seven).
var diceOdds = map[string]float64{
	DiceChoiceUnder: 1.70,
	DiceChoiceExact: 3.50,
	DiceChoiceOver:  1.70,
}

type DiceResult struct {
	Dice       [2]int          `json:"dice"`
	Sum        int             `json:"sum"`
	Choice     string          `json:"choice"`
	Win        bool            `json:"win"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
}

type DiceEngine struct {
	*table
}

func NewDiceEngine(d Deps) *DiceEngine {
	return &DiceEngine{table: newTable(d)}
}

// Play resolves one under/over-seven round: two independent fair dice,
// the pre-committed choice decides against their sum.
func (e *DiceEngine) Play(userID int64, amount decimal.Decimal, choice string) (*DiceResult, error) {
	odds, ok := diceOdds[choice]
	if !ok {
		return nil, ErrInvalidChoice
	}

	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	d1 := e.intn(6) + 1
	d2 := e.intn(6) + 1
	sum := d1 + d2

	won := false
	switch choice {
	case DiceChoiceUnder:
		won = sum < 7
	case DiceChoiceExact:
		won = sum == 7
	case DiceChoiceOver:
		won = sum > 7
	}

	result := &DiceResult{
		Dice:   [2]int{d1, d2},
		Sum:    sum,
		Choice: choice,
		Win:    won,
	}

	if won {
		payout, err := e.settleWin(userID, models.GameTypeDice7, amount, odds)
		if err != nil {
			return nil, err
		}
		result.Multiplier = odds
		result.Payout = payout
	}

	return result, nil
}
