package services_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nepbet-backend/internal/models"
	"nepbet-backend/internal/services"
)

func TestHistoryNewestFirst(t *testing.T) {
	h := services.NewHistory()

	h.Record(&models.GameSession{ID: "a", UserID: 1001, GameType: models.GameTypeDice7})
	h.Record(&models.GameSession{ID: "b", UserID: 1001, GameType: models.GameTypeCrash})

	sessions := h.ForUser(1001)
	require.Len(t, sessions, 2)
	assert.Equal(t, "b", sessions[0].ID)
	assert.Equal(t, "a", sessions[1].ID)
}

func TestHistoryCapped(t *testing.T) {
	h := services.NewHistory()

	for i := 0; i < 150; i++ {
		h.Record(&models.GameSession{ID: strconv.Itoa(i), UserID: 1001})
	}

	sessions := h.ForUser(1001)
	assert.Len(t, sessions, 100)
	assert.Equal(t, "149", sessions[0].ID, "newest entries survive the cap")
}

func TestHistoryIsolatedPerUser(t *testing.T) {
	h := services.NewHistory()

	h.Record(&models.GameSession{ID: "a", UserID: 1001})
	h.Record(&models.GameSession{ID: "b", UserID: 1002})

	assert.Len(t, h.ForUser(1001), 1)
	assert.Len(t, h.ForUser(1002), 1)

	h.Clear(1001)
	assert.Empty(t, h.ForUser(1001))
	assert.Len(t, h.ForUser(1002), 1)
}
