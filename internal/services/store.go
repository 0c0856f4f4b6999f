package services

import "nepbet-backend/internal/models"

// Store is the durable persistence port. Collections are read and written
// whole, mirroring the keyed JSON records the platform keeps: registered
// users, the global transaction log, support tickets, and the single
// active-session record.
//
// A corrupt stored payload is treated as "no data": implementations return
// empty collections instead of an error so a bad record never takes the
// service down.
type Store interface {
	Users() ([]*models.User, error)
	SaveUsers(users []*models.User) error

	Transactions() ([]*models.Transaction, error)
	SaveTransactions(txs []*models.Transaction) error

	Tickets() ([]*models.SupportTicket, error)
	SaveTickets(tickets []*models.SupportTicket) error

	Session() (*models.User, error)
	SaveSession(user *models.User) error
	ClearSession() error
}
