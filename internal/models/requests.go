package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	// Identifier is a phone number, an email address, or the admin username.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type DepositRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method" binding:"required"`
	SenderNumber string          `json:"sender_number" binding:"required"`
	SenderName   string          `json:"sender_name" binding:"required"`
	Screenshot   string          `json:"screenshot" binding:"required"`
}

type WithdrawRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	WalletNumber string          `json:"wallet_number" binding:"required"`
	Method       string          `json:"method" binding:"required"`
}

type KycRequest struct {
	NationalIDType   string `json:"national_id_type" binding:"required"`
	NationalIDNumber string `json:"national_id_number" binding:"required"`
	Address          string `json:"address" binding:"required"`
	IssuedDate       string `json:"issued_date" binding:"required"`
}

type TicketRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority" binding:"required"`
}

type SupportChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type BetRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type MinesBetRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Mines  int             `json:"mines"`
}

type MinesRevealRequest struct {
	GameID   string `json:"game_id" binding:"required"`
	Position int    `json:"position" binding:"min=0,max=24"`
}

type CashoutRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

type DicePlayRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Choice string          `json:"choice" binding:"required,oneof=UNDER EXACT OVER"`
}

type SolitraGuessRequest struct {
	GameID string `json:"game_id" binding:"required"`
	Guess  string `json:"guess" binding:"required,oneof=HIGHER LOWER"`
}
