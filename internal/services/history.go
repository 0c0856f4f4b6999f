package services

import (
	"sync"

	"nepbet-backend/internal/models"
)

const historyLimit = 100

// History keeps settled game sessions in memory only. It is not part of
// the durable ledger and is cleared on logout.
type History struct {
	mu     sync.Mutex
	byUser map[int64][]*models.GameSession
}

func NewHistory() *History {
	return &History{byUser: make(map[int64][]*models.GameSession)}
}

func (h *History) Record(session *models.GameSession) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := append([]*models.GameSession{session}, h.byUser[session.UserID]...)
	if len(sessions) > historyLimit {
		sessions = sessions[:historyLimit]
	}
	h.byUser[session.UserID] = sessions
}

func (h *History) ForUser(userID int64) []*models.GameSession {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.byUser[userID]
	out := make([]*models.GameSession, len(sessions))
	copy(out, sessions)
	return out
}

func (h *History) Clear(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byUser, userID)
}
