package services

import (
	"crypto/subtle"
	"errors"
	"regexp"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"nepbet-backend/internal/models"
)

var (
	ErrInvalidPhone       = errors.New("invalid mobile number")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPhoneTaken         = errors.New("mobile number already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Nepal mobile numbers: 10 digits starting with 98 or 97.
var phonePattern = regexp.MustCompile(`^9[78]\d{8}$`)

// firstUserID is where sequential identifiers start. New IDs are computed
// as max over registered users AND users referenced by the transaction
// log, so a cleared user table cannot recycle an ID that the ledger still
// mentions.
const firstUserID = 1001

type AuthService struct {
	store     Store
	adminUser string
	adminPass string
	mu        sync.Mutex
}

func NewAuthService(store Store, adminUser, adminPass string) *AuthService {
	return &AuthService{store: store, adminUser: adminUser, adminPass: adminPass}
}

func (a *AuthService) Register(name, phone, email, password string) (*models.User, error) {
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Phone == phone {
			return nil, ErrPhoneTaken
		}
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	txs, err := a.store.Transactions()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           nextUserID(users, txs),
		Name:         name,
		Phone:        phone,
		Email:        email,
		Balance:      decimal.Zero,
		PasswordHash: string(hash),
	}

	users = append(users, user)
	if err := a.store.SaveUsers(users); err != nil {
		return nil, err
	}

	log.Info().Int64("user", user.ID).Msg("user registered")
	return user.Public(), nil
}

// Login authenticates by phone or email. The admin identity is a fixed
// configured credential pair checked in constant time; it lives outside
// the user table and carries no balance.
func (a *AuthService) Login(identifier, password string) (*models.User, error) {
	if a.isAdmin(identifier, password) {
		admin := &models.User{
			ID:      0,
			Name:    "Administrator",
			Email:   "admin@nepbet.com",
			Phone:   "0000000000",
			IsAdmin: true,
		}
		if err := a.store.SaveSession(admin); err != nil {
			return nil, err
		}
		return admin, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.store.Users()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != identifier && u.Phone != identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		safe := u.Public()
		if err := a.store.SaveSession(safe); err != nil {
			return nil, err
		}
		return safe, nil
	}
	return nil, ErrInvalidCredentials
}

func (a *AuthService) Logout() error {
	return a.store.ClearSession()
}

func (a *AuthService) User(userID int64) (*models.User, error) {
	users, err := a.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Public(), nil
		}
	}
	return nil, ErrUserNotFound
}

// Users lists registered (non-admin) users for the admin panel.
func (a *AuthService) Users() ([]*models.User, error) {
	users, err := a.store.Users()
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// UpdateKyc overwrites the user's KYC record wholesale; no history is kept.
func (a *AuthService) UpdateKyc(userID int64, details *models.KycDetails) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.store.Users()
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.ID != userID {
			continue
		}
		u.Kyc = details
		if err := a.store.SaveUsers(users); err != nil {
			return nil, err
		}

		if sess, err := a.store.Session(); err == nil && sess != nil && sess.ID == userID {
			sess.Kyc = details
			if err := a.store.SaveSession(sess); err != nil {
				log.Warn().Int64("user", userID).Err(err).Msg("failed to refresh session kyc")
			}
		}
		return u.Public(), nil
	}
	return nil, ErrUserNotFound
}

func (a *AuthService) isAdmin(identifier, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(identifier), []byte(a.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.adminPass)) == 1
	return userOK && passOK
}

func nextUserID(users []*models.User, txs []*models.Transaction) int64 {
	next := int64(firstUserID)
	for _, u := range users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}
	for _, tx := range txs {
		if tx.UserID >= next {
			next = tx.UserID + 1
		}
	}
	return next
}
