package games

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

var (
	ErrBetTooSmall    = errors.New("bet below minimum")
	ErrRoundNotFound  = errors.New("round not found")
	ErrRoundOver      = errors.New("round already settled")
	ErrNotYourRound   = errors.New("round belongs to another user")
	ErrInvalidChoice  = errors.New("invalid choice")
	ErrNothingToCash  = errors.New("nothing to cash out yet")
	ErrInvalidMines   = errors.New("mine count must be between 1 and 20")
	ErrTileRevealed   = errors.New("tile already revealed")
	ErrInvalidTile    = errors.New("tile index out of range")
)

// Wallet is the slice of the ledger the engines settle against.
type Wallet interface {
	Debit(userID int64, amount decimal.Decimal) error
	Credit(userID int64, amount decimal.Decimal) error
}

// Recorder receives the session record written on every win settlement.
type Recorder interface {
	Record(session *models.GameSession)
}

// Deps carries the injected collaborators every engine shares: the ledger
// slice, the session recorder, a substitutable RNG and clock, and the
// global minimum stake.
type Deps struct {
	Wallet  Wallet
	History Recorder
	Rand    *rand.Rand
	Now     func() time.Time
	MinBet  decimal.Decimal
}

// table is the shared core embedded by each engine: stake validation and
// debit before any randomness is drawn, win settlement after.
type table struct {
	wallet  Wallet
	history Recorder
	rng     *rand.Rand
	now     func() time.Time
	minBet  decimal.Decimal

	// rngMu guards rng; math/rand sources are not safe for concurrent use.
	rngMu sync.Mutex
}

func newTable(d Deps) *table {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &table{
		wallet:  d.Wallet,
		history: d.History,
		rng:     d.Rand,
		now:     d.Now,
		minBet:  d.MinBet,
	}
}

// stake validates the bet and debits it. Non-positive and below-minimum
// amounts are rejected by the same path; on insufficient funds the ledger
// declines and the round never starts.
func (t *table) stake(userID int64, amount decimal.Decimal) error {
	if amount.LessThan(t.minBet) {
		return ErrBetTooSmall
	}
	return t.wallet.Debit(userID, amount)
}

// settleWin credits stake × multiplier and records the session. The
// session's bet amount is written as zero, matching the platform's
// observed win-settlement record.
func (t *table) settleWin(userID int64, gameType models.GameType, stake decimal.Decimal, multiplier float64) (decimal.Decimal, error) {
	win := stake.Mul(decimal.NewFromFloat(multiplier)).Round(2)
	if err := t.wallet.Credit(userID, win); err != nil {
		return decimal.Zero, err
	}

	t.history.Record(&models.GameSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		GameType:   gameType,
		BetAmount:  decimal.Zero,
		WinAmount:  win,
		Multiplier: multiplier,
		Timestamp:  t.now(),
	})
	return win, nil
}

func (t *table) intn(n int) int {
	t.rngMu.Lock()
	defer t.rngMu.Unlock()
	return t.rng.Intn(n)
}

func (t *table) float64() float64 {
	t.rngMu.Lock()
	defer t.rngMu.Unlock()
	return t.rng.Float64()
}
