package games_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/games"
)

func TestDiceInvalidChoice(t *testing.T) {
	wallet := newFakeWallet(1001, 1000)
	engine := games.NewDiceEngine(testDeps(wallet, &fakeHistory{}, 1, nil))

	_, err := engine.Play(1001, decimal.NewFromInt(100), "SEVEN")
	assert.ErrorIs(t, err, games.ErrInvalidChoice)
	assert.True(t, wallet.balance(1001).Equal(decimal.NewFromInt(1000)), "invalid choice never debits")
}

func TestDiceBetTooSmall(t *testing.T) {
	wallet := newFakeWallet(1001, 1000)
	engine := games.NewDiceEngine(testDeps(wallet, &fakeHistory{}, 1, nil))

	_, err := engine.Play(1001, decimal.NewFromInt(29), games.DiceChoiceUnder)
	assert.ErrorIs(t, err, games.ErrBetTooSmall)
}

func TestDicePayouts(t *testing.T) {
	wallet := newFakeWallet(1001, 100_000_000)
	history := &fakeHistory{}
	engine := games.NewDiceEngine(testDeps(wallet, history, 99, nil))

	stake := decimal.NewFromInt(100)
	underWin := stake.Mul(decimal.NewFromFloat(1.70)).Round(2)
	exactWin := stake.Mul(decimal.NewFromFloat(3.50)).Round(2)

	sawUnderWin, sawExactWin := false, false
	for i := 0; i < 500 && !(sawUnderWin && sawExactWin); i++ {
		before := wallet.balance(1001)

		result, err := engine.Play(1001, stake, games.DiceChoiceUnder)
		require.NoError(t, err)
		if result.Win {
			require.Less(t, result.Sum, 7)
			assert.True(t, result.Payout.Equal(underWin))
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake).Add(underWin)))
			sawUnderWin = true
		} else {
			assert.True(t, result.Payout.IsZero())
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake)))
		}

		before = wallet.balance(1001)
		result, err = engine.Play(1001, stake, games.DiceChoiceExact)
		require.NoError(t, err)
		if result.Win {
			require.Equal(t, 7, result.Sum)
			assert.True(t, result.Payout.Equal(exactWin))
			assert.True(t, wallet.balance(1001).Equal(before.Sub(stake).Add(exactWin)))
			sawExactWin = true
		}
	}

	assert.True(t, sawUnderWin, "500 rounds must produce an under-seven win")
	assert.True(t, sawExactWin, "500 rounds must produce an exact-seven win")
	assert.GreaterOrEqual(t, history.count(), 2, "wins are recorded as sessions")
}

// Two fair dice: sums under seven and over seven each land 15/36 of the
// time, exact seven 6/36. The rigged part is the payout, not the dice.
func TestDiceFrequencies(t *testing.T) {
	wallet := newFakeWallet(1001, 100_000_000)
	engine := games.NewDiceEngine(testDeps(wallet, &fakeHistory{}, 7, nil))

	const n = 10_000
	var under, exact, over int
	for i := 0; i < n; i++ {
		result, err := engine.Play(1001, decimal.NewFromInt(30), games.DiceChoiceUnder)
		require.NoError(t, err)

		require.GreaterOrEqual(t, result.Sum, 2)
		require.LessOrEqual(t, result.Sum, 12)
		require.Equal(t, result.Sum, result.Dice[0]+result.Dice[1])

		switch {
		case result.Sum < 7:
			under++
			assert.True(t, result.Win)
		case result.Sum == 7:
			exact++
			assert.False(t, result.Win)
		default:
			over++
			assert.False(t, result.Win)
		}
	}

	assert.InDelta(t, 15.0/36.0, float64(under)/n, 0.02)
	assert.InDelta(t, 6.0/36.0, float64(exact)/n, 0.02)
	assert.InDelta(t, 15.0/36.0, float64(over)/n, 0.02)
}
