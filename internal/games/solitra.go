package games

import (
	"sync"

	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

const (
	GuessHigher = "HIGHER"
	GuessLower  = "LOWER"

	// Multiplier growth per correct guess.
	solitraStep = 0.05
)

var (
	solitraSuits = []string{"♠", "♥", "♦", "♣"}
	solitraRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

var solitraValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 11, "Q": 12, "K": 13, "A": 14,
}

type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

type SolitraRound struct {
	ID     string
	UserID int64
	Stake  decimal.Decimal

	mu      sync.Mutex
	current Card
	streak  int
	over    bool
}

type SolitraResult struct {
	GameID     string          `json:"game_id"`
	Card       Card            `json:"card"`
	Win        bool            `json:"win"`
	GameOver   bool            `json:"game_over"`
	Streak     int             `json:"streak"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
}

type SolitraEngine struct {
	*table

	roundsMu sync.Mutex
	rounds   map[string]*SolitraRound
}

func NewSolitraEngine(d Deps) *SolitraEngine {
	return &SolitraEngine{
		table:  newTable(d),
		rounds: make(map[string]*SolitraRound),
	}
}

// deal draws rank and suit uniformly with replacement; there is no deck
// depletion.
func (e *SolitraEngine) deal() Card {
	return Card{
		Rank: solitraRanks[e.intn(len(solitraRanks))],
		Suit: solitraSuits[e.intn(len(solitraSuits))],
	}
}

func solitraMultiplier(streak int) float64 {
	return 1.0 + float64(streak)*solitraStep
}

func (e *SolitraEngine) Start(userID int64, amount decimal.Decimal) (*SolitraResult, error) {
	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	round := &SolitraRound{
		ID:      models.GenerateGameID(),
		UserID:  userID,
		Stake:   amount,
		current: e.deal(),
	}

	e.roundsMu.Lock()
	e.rounds[round.ID] = round
	e.roundsMu.Unlock()

	return &SolitraResult{
		GameID:     round.ID,
		Card:       round.current,
		Streak:     0,
		Multiplier: 1.0,
	}, nil
}

// Guess redraws the card and compares ranks. Ties count as a win for
// either guess. A wrong guess ends the round with the stake lost.
func (e *SolitraEngine) Guess(userID int64, gameID, guess string) (*SolitraResult, error) {
	if guess != GuessHigher && guess != GuessLower {
		return nil, ErrInvalidChoice
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

	next := e.deal()
	currVal := solitraValues[round.current.Rank]
	nextVal := solitraValues[next.Rank]
	round.current = next

	won := (guess == GuessHigher && nextVal >= currVal) ||
		(guess == GuessLower && nextVal <= currVal)

	if !won {
		round.over = true
		e.remove(gameID)
		return &SolitraResult{
			GameID:   gameID,
			Card:     next,
			GameOver: true,
		}, nil
	}

	round.streak++
	return &SolitraResult{
		GameID:     gameID,
		Card:       next,
		Win:        true,
		Streak:     round.streak,
		Multiplier: solitraMultiplier(round.streak),
	}, nil
}

// Cashout settles the streak; at least one correct guess is required.
func (e *SolitraEngine) Cashout(userID int64, gameID string) (*SolitraResult, error) {
	round, err := e.round(userID, gameID)
	if err != nil {
		return nil, err
	}

	round.mu.Lock()
	defer round.mu.Unlock()

	if round.over {
		return nil, ErrRoundOver
	}
	if round.streak == 0 {
		return nil, ErrNothingToCash
	}

	round.over = true
	e.remove(gameID)

	mult := solitraMultiplier(round.streak)
	payout, err := e.settleWin(userID, models.GameTypeSolitra, round.Stake, mult)
	if err != nil {
		return nil, err
	}

	return &SolitraResult{
		GameID:     gameID,
		Card:       round.current,
		Win:        true,
		GameOver:   true,
		Streak:     round.streak,
		Multiplier: mult,
		Payout:     payout,
	}, nil
}

func (e *SolitraEngine) round(userID int64, gameID string) (*SolitraRound, error) {
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

func (e *SolitraEngine) remove(gameID string) {
	e.roundsMu.Lock()
	delete(e.rounds, gameID)
	e.roundsMu.Unlock()
}
