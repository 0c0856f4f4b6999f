package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

func newTestAuth() (*services.AuthService, *memStore) {
	store := newMemStore()
	return services.NewAuthService(store, "admin", "s3cret-admin"), store
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	auth, _ := newTestAuth()

	first, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), first.ID)
	assert.True(t, first.Balance.IsZero())
	assert.Empty(t, first.PasswordHash, "register must not return the hash")

	second, err := auth.Register("Bikash", "9709876543", "bikash@example.com", "password2")
	require.NoError(t, err)
	assert.Equal(t, int64(1002), second.ID)
}

func TestRegisterSkipsIDsHeldByLedger(t *testing.T) {
	auth, store := newTestAuth()

	// The transaction log still references a user the table lost.
	store.txs = []*models.Transaction{{ID: "1", UserID: 1005}}

	user, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(1006), user.ID)
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newTestAuth()

	_, err := auth.Register("Asha", "9601234567", "asha@example.com", "password1")
	assert.ErrorIs(t, err, services.ErrInvalidPhone)

	_, err = auth.Register("Asha", "98012345", "asha@example.com", "password1")
	assert.ErrorIs(t, err, services.ErrInvalidPhone)

	_, err = auth.Register("Asha", "9801234567", "asha@example.com", "short")
	assert.ErrorIs(t, err, services.ErrWeakPassword)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth, _ := newTestAuth()

	_, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)

	_, err = auth.Register("Other", "9801234567", "other@example.com", "password1")
	assert.ErrorIs(t, err, services.ErrPhoneTaken)

	_, err = auth.Register("Other", "9701111111", "asha@example.com", "password1")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLoginByPhoneAndEmail(t *testing.T) {
	auth, store := newTestAuth()

	_, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)

	byPhone, err := auth.Login("9801234567", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), byPhone.ID)
	assert.Empty(t, byPhone.PasswordHash)

	byEmail, err := auth.Login("asha@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), byEmail.ID)

	require.NotNil(t, store.session)
	assert.Equal(t, int64(1001), store.session.ID)

	_, err = auth.Login("asha@example.com", "wrongpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "password1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAdminLogin(t *testing.T) {
	auth, _ := newTestAuth()

	admin, err := auth.Login("admin", "s3cret-admin")
	require.NoError(t, err)
	assert.Equal(t, int64(0), admin.ID)
	assert.True(t, admin.IsAdmin)

	_, err = auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogoutClearsSession(t *testing.T) {
	auth, store := newTestAuth()

	_, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)
	_, err = auth.Login("asha@example.com", "password1")
	require.NoError(t, err)
	require.NotNil(t, store.session)

	require.NoError(t, auth.Logout())
	assert.Nil(t, store.session)
}

func TestUpdateKyc(t *testing.T) {
	auth, _ := newTestAuth()

	_, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)

	details := &models.KycDetails{
		NationalIDType:   "citizenship",
		NationalIDNumber: "12-34-56",
		Address:          "Kathmandu",
		IssuedDate:       "2015-04-12",
	}
	user, err := auth.UpdateKyc(1001, details)
	require.NoError(t, err)
	require.NotNil(t, user.Kyc)
	assert.True(t, user.Kyc.Complete())

	_, err = auth.UpdateKyc(9999, details)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUsersStripCredentials(t *testing.T) {
	auth, store := newTestAuth()

	_, err := auth.Register("Asha", "9801234567", "asha@example.com", "password1")
	require.NoError(t, err)

	// The stored record keeps the hash; the listing must not.
	require.NotEmpty(t, store.users[0].PasswordHash)

	users, err := auth.Users()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
	assert.True(t, users[0].Balance.Equal(decimal.Zero))
}
