package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateTicketID() string {
	return fmt.Sprintf("ticket_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}
