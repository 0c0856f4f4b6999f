package games_test

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nepbet-backend/internal/games"
	"nepbet-backend/internal/models"
)

var errNoFunds = errors.New("insufficient balance")

// fakeWallet tracks a single balance per user in memory.
type fakeWallet struct {
	mu       sync.Mutex
	balances map[int64]decimal.Decimal
}

func newFakeWallet(userID int64, balance int64) *fakeWallet {
	return &fakeWallet{
		balances: map[int64]decimal.Decimal{userID: decimal.NewFromInt(balance)},
	}
}

func (w *fakeWallet) Debit(userID int64, amount decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.balances[userID].Sub(amount)
	if next.IsNegative() {
		return errNoFunds
	}
	w.balances[userID] = next
	return nil
}

func (w *fakeWallet) Credit(userID int64, amount decimal.Decimal) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[userID] = w.balances[userID].Add(amount)
	return nil
}

func (w *fakeWallet) balance(userID int64) decimal.Decimal {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[userID]
}

// fakeHistory captures recorded sessions.
type fakeHistory struct {
	mu       sync.Mutex
	sessions []*models.GameSession
}

func (h *fakeHistory) Record(session *models.GameSession) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = append(h.sessions, session)
}

func (h *fakeHistory) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *fakeHistory) last() *models.GameSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.sessions) == 0 {
		return nil
	}
	return h.sessions[len(h.sessions)-1]
}

func testDeps(wallet *fakeWallet, history *fakeHistory, seed int64, now func() time.Time) games.Deps {
	return games.Deps{
		Wallet:  wallet,
		History: history,
		Rand:    rand.New(rand.NewSource(seed)),
		Now:     now,
		MinBet:  decimal.NewFromInt(30),
	}
}
