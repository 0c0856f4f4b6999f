package games_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/games"
)

// The win table is checked in priority order; verify every smash against
// a reimplementation of that table.
func TestVampireSmashConsistency(t *testing.T) {
	wallet := newFakeWallet(1001, 100_000_000)
	history := &fakeHistory{}
	engine := games.NewVampireEngine(testDeps(wallet, history, 19, nil))

	stake := decimal.NewFromInt(50)

	expect := func(counts map[string]int) (float64, string) {
		switch {
		case counts[games.SymbolVampire] >= 3:
			return 5.0, "VAMPIRE JACKPOT!"
		case counts[games.SymbolBat] >= 4:
			return 3.0, "BAT SWARM!"
		case counts[games.SymbolBlood] >= 4:
			return 2.0, "BLOOD THIRST!"
		case counts[games.SymbolWolf] >= 4:
			return 1.5, "WOLF PACK!"
		}
		return 0, ""
	}

	wins := 0
	for i := 0; i < 5000; i++ {
		before := wallet.balance(1001)

		result, err := engine.Smash(1001, stake)
		require.NoError(t, err)
		require.Len(t, result.Grid, 9)

		counts := make(map[string]int)
		for _, sym := range result.Grid {
			counts[sym]++
		}

		mult, label := expect(counts)
		if mult > 0 {
			require.True(t, result.Win, "grid %v must win", result.Grid)
			assert.Equal(t, label, result.Message)
			assert.Equal(t, mult, result.Multiplier)

			want := stake.Mul(decimal.NewFromFloat(mult)).Round(2)
			assert.True(t, result.Payout.Equal(want))
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake).Add(want)))
			wins++
		} else {
			require.False(t, result.Win, "grid %v must lose", result.Grid)
			assert.True(t, result.Payout.IsZero())
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake)))
		}
	}

	assert.Equal(t, wins, history.count())
}

func TestVampireBetTooSmall(t *testing.T) {
	wallet := newFakeWallet(1001, 1000)
	engine := games.NewVampireEngine(testDeps(wallet, &fakeHistory{}, 1, nil))

	_, err := engine.Smash(1001, decimal.NewFromInt(29))
	assert.ErrorIs(t, err, games.ErrBetTooSmall)
	assert.True(t, wallet.balance(1001).Equal(decimal.NewFromInt(1000)))
}
