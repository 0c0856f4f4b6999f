package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"nepbet-backend/internal/models"
)

const (
	usersFile        = "users.json"
	transactionsFile = "transactions.json"
	ticketsFile      = "tickets.json"
	sessionFile      = "session.json"
)

// FileStore persists each collection as a JSON file under a data directory.
// Reads of missing or corrupt files yield empty collections; writes are
// plain file replacements with no transactional wrapper.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %v", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Users() ([]*models.User, error) {
	var users []*models.User
	s.read(usersFile, &users)
	return users, nil
}

func (s *FileStore) SaveUsers(users []*models.User) error {
	return s.write(usersFile, users)
}

func (s *FileStore) Transactions() ([]*models.Transaction, error) {
	var txs []*models.Transaction
	s.read(transactionsFile, &txs)
	return txs, nil
}

func (s *FileStore) SaveTransactions(txs []*models.Transaction) error {
	return s.write(transactionsFile, txs)
}

func (s *FileStore) Tickets() ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	s.read(ticketsFile, &tickets)
	return tickets, nil
}

func (s *FileStore) SaveTickets(tickets []*models.SupportTicket) error {
	return s.write(ticketsFile, tickets)
}

func (s *FileStore) Session() (*models.User, error) {
	var user *models.User
	s.read(sessionFile, &user)
	return user, nil
}

func (s *FileStore) SaveSession(user *models.User) error {
	return s.write(sessionFile, user)
}

func (s *FileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) read(name string, out interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Malformed stored JSON resets the collection rather than failing.
		log.Warn().Str("file", name).Err(err).Msg("discarding corrupt store file")
	}
}

func (s *FileStore) write(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %v", name, err)
	}
	return nil
}
