package services_test

import (
	"sync"
	"time"

	"nepbet-backend/internal/models"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu      sync.Mutex
	users   []*models.User
	txs     []*models.Transaction
	tickets []*models.SupportTicket
	session *models.User
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) Users() ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users, nil
}

func (m *memStore) SaveUsers(users []*models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = users
	return nil
}

func (m *memStore) Transactions() ([]*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txs, nil
}

func (m *memStore) SaveTransactions(txs []*models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = txs
	return nil
}

func (m *memStore) Tickets() ([]*models.SupportTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickets, nil
}

func (m *memStore) SaveTickets(tickets []*models.SupportTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets = tickets
	return nil
}

func (m *memStore) Session() (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memStore) SaveSession(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = user
	return nil
}

func (m *memStore) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// fakeClock hands out strictly advancing times under test control.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
