package games

import (
	"sync"

	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

const (
	minesGridSize     = 25
	minesMaxMines     = 20
	minesDefaultMines = 3

	// minesHouseFactor scales the fair hypergeometric odds down; the
	// published multiplier is 60% of fair value.
	minesHouseFactor = 0.60
)

// MinesMultiplier is the published multiplier after gems safe reveals on a
// 25-cell grid holding mines mines: the product of the inverse odds of
// each safe pick, scaled by the house factor.
func MinesMultiplier(gems, mines int) float64 {
	m := 1.0
	for i := 0; i < gems; i++ {
		remainingTiles := float64(minesGridSize - i)
		remainingSafe := float64(minesGridSize - mines - i)
		m *= remainingTiles / remainingSafe
	}
	return m * minesHouseFactor
}

type MinesRound struct {
	ID     string
	UserID int64
	Stake  decimal.Decimal

	mines    [minesGridSize]bool
	count    int
	revealed [minesGridSize]bool
	gems     int

	mu   sync.Mutex
	over bool
}

type MinesStartResult struct {
	GameID     string `json:"game_id"`
	Mines      int    `json:"mines"`
	GridSize   int    `json:"grid_size"`
}

type MinesRevealResult struct {
	GameID     string          `json:"game_id"`
	IsMine     bool            `json:"is_mine"`
	GameOver   bool            `json:"game_over"`
	Gems       int             `json:"gems"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
	// Positions holds every mine index, revealed only when the round ends.
	Positions []int `json:"positions,omitempty"`
}

type MinesEngine struct {
	*table

	roundsMu sync.Mutex
	rounds   map[string]*MinesRound
}

func NewMinesEngine(d Deps) *MinesEngine {
	return &MinesEngine{
		table:  newTable(d),
		rounds: make(map[string]*MinesRound),
	}
}

// Start stakes the bet and seeds the grid with mineCount mines placed
// uniformly without replacement. A zero mineCount takes the default.
func (e *MinesEngine) Start(userID int64, amount decimal.Decimal, mineCount int) (*MinesStartResult, error) {
	if mineCount == 0 {
		mineCount = minesDefaultMines
	}
	if mineCount < 1 || mineCount > minesMaxMines {
		return nil, ErrInvalidMines
	}

	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	round := &MinesRound{
		ID:     models.GenerateGameID(),
		UserID: userID,
		Stake:  amount,
		count:  mineCount,
	}

	placed := 0
	for placed < mineCount {
		idx := e.intn(minesGridSize)
		if !round.mines[idx] {
			round.mines[idx] = true
			placed++
		}
	}

	e.roundsMu.Lock()
	e.rounds[round.ID] = round
	e.roundsMu.Unlock()

	return &MinesStartResult{GameID: round.ID, Mines: mineCount, GridSize: minesGridSize}, nil
}

// Reveal uncovers one tile. A mine ends the round as a total loss and
// exposes the full grid; revealing the last safe tile auto-cashes-out.
func (e *MinesEngine) Reveal(userID int64, gameID string, position int) (*MinesRevealResult, error) {
	if position < 0 || position >= minesGridSize {
		return nil, ErrInvalidTile
	}

	round, err := e.round(userID, gameID)
	if err != nil {
		return nil, err
	}

	round.mu.Lock()
	defer round.mu.Unlock()

	if round.over {
		return nil, ErrRoundOver
	}
	if round.revealed[position] {
		return nil, ErrTileRevealed
	}
	round.revealed[position] = true

	if round.mines[position] {
		round.over = true
		e.remove(gameID)
		return &MinesRevealResult{
			GameID:    gameID,
			IsMine:    true,
			GameOver:  true,
			Gems:      round.gems,
			Positions: round.minePositions(),
		}, nil
	}

	round.gems++
	mult := MinesMultiplier(round.gems, round.count)

	if round.gems == minesGridSize-round.count {
		return e.settleLocked(round, mult)
	}

	return &MinesRevealResult{
		GameID:     gameID,
		GameOver:   false,
		Gems:       round.gems,
		Multiplier: mult,
	}, nil
}

// Cashout settles at the current multiplier; at least one safe reveal is
// required.
func (e *MinesEngine) Cashout(userID int64, gameID string) (*MinesRevealResult, error) {
	round, err := e.round(userID, gameID)
	if err != nil {
		return nil, err
	}

	round.mu.Lock()
	defer round.mu.Unlock()

	if round.over {
		return nil, ErrRoundOver
	}
	if round.gems == 0 {
		return nil, ErrNothingToCash
	}

	return e.settleLocked(round, MinesMultiplier(round.gems, round.count))
}

// settleLocked finishes a winning round. Callers hold round.mu.
func (e *MinesEngine) settleLocked(round *MinesRound, mult float64) (*MinesRevealResult, error) {
	round.over = true
	e.remove(round.ID)

	payout, err := e.settleWin(round.UserID, models.GameTypeMines, round.Stake, mult)
	if err != nil {
		return nil, err
	}

	return &MinesRevealResult{
		GameID:     round.ID,
		GameOver:   true,
		Gems:       round.gems,
		Multiplier: mult,
		Payout:     payout,
		Positions:  round.minePositions(),
	}, nil
}

func (e *MinesEngine) round(userID int64, gameID string) (*MinesRound, error) {
	e.roundsMu.Lock()
	round, ok := e.rounds[gameID]
	e.roundsMu.Unlock()
	if !ok {
		return nil, ErrRoundNotFound
	}
	if round.UserID != userID {
		return nil, ErrNotYourRound
	}
	return round, nil
}

func (e *MinesEngine) remove(gameID string) {
	e.roundsMu.Lock()
	delete(e.rounds, gameID)
	e.roundsMu.Unlock()
}

func (r *MinesRound) minePositions() []int {
	positions := make([]int, 0, r.count)
	for i, mined := range r.mines {
		if mined {
			positions = append(positions, i)
		}
	}
	return positions
}
