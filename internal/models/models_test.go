package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

func TestKycComplete(t *testing.T) {
	var k *models.KycDetails
	if k.Complete() {
		t.Error("nil KYC should not be complete")
	}

	k = &models.KycDetails{
		NationalIDType:   "citizenship",
		NationalIDNumber: "12-34-56",
		Address:          "Kathmandu",
	}
	if k.Complete() {
		t.Error("KYC missing issued date should not be complete")
	}

	k.IssuedDate = "2015-04-12"
	if !k.Complete() {
		t.Error("fully filled KYC should be complete")
	}
}

func TestUserPublicStripsCredentials(t *testing.T) {
	u := &models.User{
		ID:           1001,
		Name:         "Asha",
		Phone:        "9801234567",
		Email:        "asha@example.com",
		Balance:      decimal.NewFromInt(500),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}

	p := u.Public()
	if p.PasswordHash != "" {
		t.Error("Public() should strip the password hash")
	}
	if p.ID != u.ID || !p.Balance.Equal(u.Balance) {
		t.Error("Public() should keep identity and balance")
	}
	if u.PasswordHash == "" {
		t.Error("Public() must not mutate the original")
	}
}

func TestTransactionTerminal(t *testing.T) {
	tx := &models.Transaction{Status: models.TransactionStatusPending}
	if tx.Terminal() {
		t.Error("PENDING is not terminal")
	}
	tx.Status = models.TransactionStatusCompleted
	if !tx.Terminal() {
		t.Error("COMPLETED is terminal")
	}
	tx.Status = models.TransactionStatusFailed
	if !tx.Terminal() {
		t.Error("FAILED is terminal")
	}
}

func TestGenerateGameID(t *testing.T) {
	a := models.GenerateGameID()
	b := models.GenerateGameID()
	if a == "" || a == b {
		t.Errorf("game IDs should be unique and non-empty, got %q and %q", a, b)
	}
}
