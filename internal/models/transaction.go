package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"

	// Declared for completeness; bets and wins settle directly against the
	// balance and are not persisted as ledger rows.
	TransactionTypeBet TransactionType = "BET"
	TransactionTypeWin TransactionType = "WIN"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is a money-movement record. It starts PENDING and moves
// exactly once to COMPLETED or FAILED; terminal states are final.
type Transaction struct {
	ID        string            `json:"id" redis:"id"`
	UserID    int64             `json:"user_id" redis:"user_id"`
	Type      TransactionType   `json:"type" redis:"type"`
	Amount    decimal.Decimal   `json:"amount" redis:"amount"`
	Status    TransactionStatus `json:"status" redis:"status"`
	CreatedAt time.Time         `json:"created_at" redis:"created_at"`

	// Deposit metadata: who sent the funds and the proof-of-payment ref.
	Method       string `json:"method,omitempty"`
	SenderNumber string `json:"sender_number,omitempty"`
	SenderName   string `json:"sender_name,omitempty"`
	Screenshot   string `json:"screenshot,omitempty"`

	// Withdrawal metadata: destination wallet description.
	Details string `json:"details,omitempty"`
}

func (t *Transaction) Terminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}
