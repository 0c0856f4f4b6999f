package models

import "time"

type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "OPEN"
	TicketStatusClosed TicketStatus = "CLOSED"
)

type SupportTicket struct {
	ID        string       `json:"id" redis:"id"`
	UserID    int64        `json:"user_id" redis:"user_id"`
	UserName  string       `json:"user_name" redis:"user_name"`
	Subject   string       `json:"subject" redis:"subject"`
	Message   string       `json:"message" redis:"message"`
	Priority  string       `json:"priority" redis:"priority"`
	Status    TicketStatus `json:"status" redis:"status"`
	CreatedAt time.Time    `json:"created_at" redis:"created_at"`
}
