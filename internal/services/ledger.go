package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUserNotFound      = errors.New("user not found")
	ErrDepositOutOfRange = errors.New("deposit amount out of range")
	ErrWithdrawTooSmall  = errors.New("withdrawal below minimum")
)

// Ledger is the single authority over user balances and the transaction
// log. Every monetary mutation funnels through it; callers never touch a
// balance directly.
//
// Deposits take effect on approval. Withdrawals debit at submission and
// are refunded only on rejection.
type Ledger struct {
	store Store
	now   func() time.Time

	minDeposit  decimal.Decimal
	maxDeposit  decimal.Decimal
	minWithdraw decimal.Decimal

	mu       sync.Mutex
	lastTxID int64
}

type LedgerLimits struct {
	MinDeposit  decimal.Decimal
	MaxDeposit  decimal.Decimal
	MinWithdraw decimal.Decimal
}

func NewLedger(store Store, limits LedgerLimits, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		store:       store,
		now:         now,
		minDeposit:  limits.MinDeposit,
		maxDeposit:  limits.MaxDeposit,
		minWithdraw: limits.MinWithdraw,
	}
}

// Debit removes amount from the user's balance. It fails without any
// effect when the amount is not positive or the balance cannot cover it.
func (l *Ledger) Debit(userID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyDelta(userID, amount.Neg())
}

// Credit adds amount to the user's balance. Zero is a permitted no-op.
func (l *Ledger) Credit(userID int64, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyDelta(userID, amount)
}

func (l *Ledger) Balance(userID int64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, err := l.store.Users()
	if err != nil {
		return decimal.Zero, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Balance, nil
		}
	}
	return decimal.Zero, ErrUserNotFound
}

// RecordDeposit files a PENDING deposit. The balance is untouched until an
// admin approves it; the proof of payment is reviewed out of band.
func (l *Ledger) RecordDeposit(userID int64, amount decimal.Decimal, method, senderNumber, senderName, screenshot string) (*models.Transaction, error) {
	if amount.LessThan(l.minDeposit) || amount.GreaterThan(l.maxDeposit) {
		return nil, ErrDepositOutOfRange
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &models.Transaction{
		ID:           l.nextTxID(),
		UserID:       userID,
		Type:         models.TransactionTypeDeposit,
		Amount:       amount.Round(2),
		Status:       models.TransactionStatusPending,
		CreatedAt:    l.now(),
		Method:       method,
		SenderNumber: senderNumber,
		SenderName:   senderName,
		Screenshot:   screenshot,
	}

	if err := l.prependTx(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// RecordWithdrawal files a PENDING withdrawal and immediately debits the
// amount: funds are reserved at submission, not on approval. If the
// balance cannot cover the amount, nothing is recorded.
func (l *Ledger) RecordWithdrawal(userID int64, amount decimal.Decimal, walletNumber, method string) (*models.Transaction, error) {
	if amount.LessThan(l.minWithdraw) {
		return nil, ErrWithdrawTooSmall
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.applyDelta(userID, amount.Neg()); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:        l.nextTxID(),
		UserID:    userID,
		Type:      models.TransactionTypeWithdrawal,
		Amount:    amount.Round(2),
		Status:    models.TransactionStatusPending,
		CreatedAt: l.now(),
		Method:    method,
		Details:   "To: " + walletNumber,
	}

	if err := l.prependTx(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Approve moves a PENDING transaction to COMPLETED. Deposits credit the
// owning user now, their first balance effect. Calling it on a missing or
// terminal transaction is a no-op.
func (l *Ledger) Approve(txID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.store.Transactions()
	if err != nil {
		return err
	}

	tx := findTx(txs, txID)
	if tx == nil || tx.Status != models.TransactionStatusPending {
		return nil
	}

	tx.Status = models.TransactionStatusCompleted
	if err := l.store.SaveTransactions(txs); err != nil {
		return err
	}

	if tx.Type == models.TransactionTypeDeposit {
		if err := l.applyDelta(tx.UserID, tx.Amount); err != nil {
			log.Error().Str("tx", txID).Err(err).Msg("deposit credit failed after approval")
			return err
		}
	}

	log.Info().Str("tx", txID).Str("type", string(tx.Type)).Msg("transaction approved")
	return nil
}

// Reject moves a PENDING transaction to FAILED. Withdrawals refund the
// debit taken at submission; rejected deposits never had a balance effect.
func (l *Ledger) Reject(txID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.store.Transactions()
	if err != nil {
		return err
	}

	tx := findTx(txs, txID)
	if tx == nil || tx.Status != models.TransactionStatusPending {
		return nil
	}

	tx.Status = models.TransactionStatusFailed
	if err := l.store.SaveTransactions(txs); err != nil {
		return err
	}

	if tx.Type == models.TransactionTypeWithdrawal {
		if err := l.applyDelta(tx.UserID, tx.Amount); err != nil {
			log.Error().Str("tx", txID).Err(err).Msg("withdrawal refund failed after rejection")
			return err
		}
	}

	log.Info().Str("tx", txID).Str("type", string(tx.Type)).Msg("transaction rejected")
	return nil
}

func (l *Ledger) Transactions() ([]*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Transactions()
}

func (l *Ledger) UserTransactions(userID int64) ([]*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}

	var out []*models.Transaction
	for _, tx := range txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Pending returns PENDING transactions of the given type, for the admin
// review queues.
func (l *Ledger) Pending(txType models.TransactionType) ([]*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}

	var out []*models.Transaction
	for _, tx := range txs {
		if tx.Type == txType && tx.Status == models.TransactionStatusPending {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Search matches the admin cross-user filter: transaction ID, sender
// number, or owning user ID.
func (l *Ledger) Search(filter string) ([]*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.store.Transactions()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return txs, nil
	}

	var out []*models.Transaction
	for _, tx := range txs {
		if strings.Contains(tx.ID, filter) ||
			strings.Contains(tx.SenderNumber, filter) ||
			strings.Contains(strconv.FormatInt(tx.UserID, 10), filter) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// applyDelta mutates a balance by a signed amount, rounding to 2 decimals
// after the operation. Negative deltas fail on insufficient funds with no
// partial effect. Callers hold l.mu.
func (l *Ledger) applyDelta(userID int64, delta decimal.Decimal) error {
	users, err := l.store.Users()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.ID != userID {
			continue
		}
		next := u.Balance.Add(delta).Round(2)
		if next.IsNegative() {
			return ErrInsufficientFunds
		}
		u.Balance = next
		if err := l.store.SaveUsers(users); err != nil {
			return err
		}
		l.refreshSession(u)
		return nil
	}
	return ErrUserNotFound
}

// refreshSession mirrors the new balance into the active session record
// when it belongs to the mutated user.
func (l *Ledger) refreshSession(u *models.User) {
	sess, err := l.store.Session()
	if err != nil || sess == nil || sess.ID != u.ID {
		return
	}
	sess.Balance = u.Balance
	if err := l.store.SaveSession(sess); err != nil {
		log.Warn().Int64("user", u.ID).Err(err).Msg("failed to refresh session balance")
	}
}

func (l *Ledger) prependTx(tx *models.Transaction) error {
	txs, err := l.store.Transactions()
	if err != nil {
		return err
	}
	txs = append([]*models.Transaction{tx}, txs...)
	return l.store.SaveTransactions(txs)
}

// nextTxID derives IDs from the clock in milliseconds, bumped when two
// transactions land within the same millisecond so IDs stay strictly
// increasing. Callers hold l.mu.
func (l *Ledger) nextTxID() string {
	ms := l.now().UnixMilli()
	if ms <= l.lastTxID {
		ms = l.lastTxID + 1
	}
	l.lastTxID = ms
	return strconv.FormatInt(ms, 10)
}

func findTx(txs []*models.Transaction, id string) *models.Transaction {
	for _, tx := range txs {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}
