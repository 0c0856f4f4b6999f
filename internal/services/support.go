package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"nepbet-backend/internal/models"
)

// SupportUnavailableMessage is the fixed fallback shown whenever the
// external agent cannot answer. Agent failures must never surface as
// application errors.
const SupportUnavailableMessage = "AI Support is currently unavailable. Please contact human support."

// SupportAgent is the external text-completion collaborator behind the
// support chat. It receives the user's message plus a short context string
// and returns free text.
type SupportAgent interface {
	Reply(ctx context.Context, message, context string) (string, error)
}

// UnavailableAgent is the shipped default when no agent is configured.
type UnavailableAgent struct{}

func (UnavailableAgent) Reply(context.Context, string, string) (string, error) {
	return SupportUnavailableMessage, nil
}

type SupportService struct {
	store Store
	agent SupportAgent
	now   func() time.Time
	mu    sync.Mutex
}

func NewSupportService(store Store, agent SupportAgent, now func() time.Time) *SupportService {
	if agent == nil {
		agent = UnavailableAgent{}
	}
	if now == nil {
		now = time.Now
	}
	return &SupportService{store: store, agent: agent, now: now}
}

func (s *SupportService) CreateTicket(user *models.User, subject, message, priority string) (*models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := &models.SupportTicket{
		ID:        models.GenerateTicketID(),
		UserID:    user.ID,
		UserName:  user.Name,
		Subject:   subject,
		Message:   message,
		Priority:  priority,
		Status:    models.TicketStatusOpen,
		CreatedAt: s.now(),
	}

	tickets, err := s.store.Tickets()
	if err != nil {
		return nil, err
	}
	tickets = append([]*models.SupportTicket{ticket}, tickets...)
	if err := s.store.SaveTickets(tickets); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *SupportService) Tickets() ([]*models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Tickets()
}

// Chat forwards a message to the support agent. Any agent error degrades
// to the static fallback string.
func (s *SupportService) Chat(ctx context.Context, message, chatContext string) string {
	reply, err := s.agent.Reply(ctx, message, chatContext)
	if err != nil {
		log.Warn().Err(err).Msg("support agent failed")
		return SupportUnavailableMessage
	}
	if reply == "" {
		return SupportUnavailableMessage
	}
	return reply
}
