package models

import "github.com/shopspring/decimal"

// KycDetails is the identity verification payload attached to a user.
// All four fields must be filled before a withdrawal is allowed.
type KycDetails struct {
	NationalIDType   string `json:"national_id_type"`
	NationalIDNumber string `json:"national_id_number"`
	Address          string `json:"address"`
	IssuedDate       string `json:"issued_date"`
}

func (k *KycDetails) Complete() bool {
	if k == nil {
		return false
	}
	return k.NationalIDType != "" && k.NationalIDNumber != "" && k.Address != "" && k.IssuedDate != ""
}

type User struct {
	ID    int64  `json:"id" redis:"id"`
	Name  string `json:"name" redis:"name"`
	Phone string `json:"phone" redis:"phone"`
	Email string `json:"email" redis:"email"`

	// Balance is mutated only through the ledger, never directly.
	Balance decimal.Decimal `json:"balance" redis:"balance"`

	PasswordHash string `json:"password_hash,omitempty" redis:"password_hash"`
	IsAdmin      bool   `json:"is_admin" redis:"is_admin"`

	Kyc *KycDetails `json:"kyc,omitempty"`
}

// Public returns a copy safe to hand to API responses and the session
// record: same identity and balance, credential material stripped.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}
