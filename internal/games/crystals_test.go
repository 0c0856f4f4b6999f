package games_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/games"
)

// Every spin must be internally consistent: a win requires a matched
// middle row on a paying symbol, and the payout follows the published
// table. Bomb and clover rows never pay.
func TestCrystalsSpinConsistency(t *testing.T) {
	wallet := newFakeWallet(1001, 100_000_000)
	history := &fakeHistory{}
	engine := games.NewCrystalsEngine(testDeps(wallet, history, 13, nil))

	payouts := map[string]float64{
		games.SymbolDiamond: 15,
		games.SymbolOrb:     8,
		games.SymbolAmber:   4,
		games.SymbolMoon:    2,
		games.SymbolStar:    1,
	}
	stake := decimal.NewFromInt(50)

	wins := 0
	for i := 0; i < 5000; i++ {
		before := wallet.balance(1001)

		result, err := engine.Spin(1001, stake)
		require.NoError(t, err)
		require.Len(t, result.Grid, 9)

		middleMatched := result.Grid[3] == result.Grid[4] && result.Grid[4] == result.Grid[5]
		mult, pays := payouts[result.Grid[3]]

		if middleMatched && pays {
			require.True(t, result.Win, "matched paying row must win: %v", result.Grid)
			assert.Equal(t, []int{3, 4, 5}, result.WinLine)
			assert.Equal(t, mult, result.Multiplier)

			want := stake.Mul(decimal.NewFromFloat(mult)).Round(2)
			assert.True(t, result.Payout.Equal(want))
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake).Add(want)))
			wins++
		} else {
			require.False(t, result.Win, "unmatched or non-paying row must lose: %v", result.Grid)
			assert.True(t, result.Payout.IsZero())
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake)))
		}
	}

	assert.Equal(t, wins, history.count())
}

// The pool is weighted 51 total with bombs at 20 and clovers at 15; the
// grid draw frequencies must track those weights.
func TestCrystalsSymbolWeights(t *testing.T) {
	wallet := newFakeWallet(1001, 100_000_000)
	engine := games.NewCrystalsEngine(testDeps(wallet, &fakeHistory{}, 21, nil))

	counts := make(map[string]int)
	total := 0
	for i := 0; i < 2000; i++ {
		result, err := engine.Spin(1001, decimal.NewFromInt(30))
		require.NoError(t, err)
		for _, sym := range result.Grid {
			counts[sym]++
			total++
		}
	}

	expected := map[string]float64{
		games.SymbolDiamond: 1.0 / 51.0,
		games.SymbolOrb:     2.0 / 51.0,
		games.SymbolAmber:   3.0 / 51.0,
		games.SymbolMoon:    4.0 / 51.0,
		games.SymbolStar:    6.0 / 51.0,
		games.SymbolClover:  15.0 / 51.0,
		games.SymbolBomb:    20.0 / 51.0,
	}
	for sym, want := range expected {
		assert.InDelta(t, want, float64(counts[sym])/float64(total), 0.02, "symbol %s", sym)
	}
}
