package games

import (
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nepbet-backend/internal/models"
)

// crashGrowthRate is the exponent constant per elapsed millisecond: the
// live multiplier is exp(rate * t).
const crashGrowthRate = 0.00006

const crashTickInterval = 100 * time.Millisecond

// Broadcaster pushes live round updates to the owning user's websocket.
type Broadcaster interface {
	BroadcastGameUpdate(userID int64, gameID string, multiplier float64)
	BroadcastGameCrash(userID int64, gameID string, crashPoint float64)
}

// NoopBroadcaster drops all updates.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameUpdate(int64, string, float64) {}
func (NoopBroadcaster) BroadcastGameCrash(int64, string, float64)  {}

// MultiplierAt is the pure curve: where the live multiplier sits after
// the given time since round start.
func MultiplierAt(elapsed time.Duration) float64 {
	return math.Exp(crashGrowthRate * float64(elapsed.Milliseconds()))
}

// CrashRound is one live crash game. Cash-out and crash detection race on
// the advancing clock; the settled flag under mu guarantees exactly one
// of them wins.
type CrashRound struct {
	ID        string
	UserID    int64
	Stake     decimal.Decimal
	CrashPoint float64
	StartedAt time.Time

	mu      sync.Mutex
	settled bool
	stop    chan struct{}
}

// settleOnce flips the round to settled. The first caller gets true and
// owns the settlement; everyone after is a no-op.
func (r *CrashRound) settleOnce() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settled {
		return false
	}
	r.settled = true
	return true
}

type CrashResult struct {
	GameID     string          `json:"game_id"`
	Win        bool            `json:"win"`
	Multiplier float64         `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
	CrashPoint float64         `json:"crash_point,omitempty"`
}

type CrashEngine struct {
	*table
	broadcaster Broadcaster

	roundsMu sync.Mutex
	rounds   map[string]*CrashRound
}

func NewCrashEngine(d Deps, b Broadcaster) *CrashEngine {
	if b == nil {
		b = NoopBroadcaster{}
	}
	return &CrashEngine{
		table:       newTable(d),
		broadcaster: b,
		rounds:      make(map[string]*CrashRound),
	}
}

// drawCrashPoint samples the fixed discrete distribution: half of all
// rounds bust below 1.30x, and only one in twenty reaches 3x or more.
func (e *CrashEngine) drawCrashPoint() float64 {
	r := e.float64()
	switch {
	case r < 0.50:
		return 1.00 + e.float64()*0.30
	case r < 0.80:
		return 1.30 + e.float64()*0.60
	case r < 0.95:
		return 1.90 + e.float64()*1.10
	default:
		return 3.00 + e.float64()*5.00
	}
}

// Start stakes the bet, pre-draws the crash point and launches the round
// loop. The crash point is never revealed to the caller.
func (e *CrashEngine) Start(userID int64, amount decimal.Decimal) (*CrashRound, error) {
	if err := e.stake(userID, amount); err != nil {
		return nil, err
	}

	round := &CrashRound{
		ID:         models.GenerateGameID(),
		UserID:     userID,
		Stake:      amount,
		CrashPoint: e.drawCrashPoint(),
		StartedAt:  e.now(),
		stop:       make(chan struct{}),
	}

	e.roundsMu.Lock()
	e.rounds[round.ID] = round
	e.roundsMu.Unlock()

	go e.run(round)
	return round, nil
}

func (e *CrashEngine) run(round *CrashRound) {
	ticker := time.NewTicker(crashTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m := MultiplierAt(e.now().Sub(round.StartedAt))
			if m >= round.CrashPoint {
				if round.settleOnce() {
					e.finishCrash(round)
				}
				return
			}
			e.broadcaster.BroadcastGameUpdate(round.UserID, round.ID, m)
		case <-round.stop:
			return
		}
	}
}

// finishCrash ends a busted round. The stake was removed at start, so a
// crash settles with no ledger call.
func (e *CrashEngine) finishCrash(round *CrashRound) {
	e.broadcaster.BroadcastGameCrash(round.UserID, round.ID, round.CrashPoint)
	e.remove(round.ID)
}

// Cashout settles the round as a win at the multiplier the clock shows
// now, unless the curve already reached the crash point, in which case
// the round busts here and the caller is told so.
func (e *CrashEngine) Cashout(userID int64, gameID string) (*CrashResult, error) {
	e.roundsMu.Lock()
	round, ok := e.rounds[gameID]
	e.roundsMu.Unlock()
	if !ok {
		return nil, ErrRoundNotFound
	}
	if round.UserID != userID {
		return nil, ErrNotYourRound
	}

	m := MultiplierAt(e.now().Sub(round.StartedAt))
	if m >= round.CrashPoint {
		if round.settleOnce() {
			close(round.stop)
			e.finishCrash(round)
		}
		return &CrashResult{
			GameID:     gameID,
			Win:        false,
			Multiplier: round.CrashPoint,
			Payout:     decimal.Zero,
			CrashPoint: round.CrashPoint,
		}, nil
	}

	if !round.settleOnce() {
		return nil, ErrRoundOver
	}
	close(round.stop)

	payout, err := e.settleWin(userID, models.GameTypeCrash, round.Stake, m)
	e.remove(gameID)
	if err != nil {
		return nil, err
	}

	return &CrashResult{
		GameID:     gameID,
		Win:        true,
		Multiplier: m,
		Payout:     payout,
	}, nil
}

func (e *CrashEngine) remove(gameID string) {
	e.roundsMu.Lock()
	delete(e.rounds, gameID)
	e.roundsMu.Unlock()
}

// CleanupStale busts rounds whose loop should long have crashed them, a
// guard against leaked rounds after clock skew or a wedged runner.
func (e *CrashEngine) CleanupStale(maxAge time.Duration) {
	e.roundsMu.Lock()
	stale := make([]*CrashRound, 0)
	for _, r := range e.rounds {
		if e.now().Sub(r.StartedAt) > maxAge {
			stale = append(stale, r)
		}
	}
	e.roundsMu.Unlock()

	for _, r := range stale {
		if r.settleOnce() {
			close(r.stop)
			e.finishCrash(r)
		}
	}
}

// Stop tears down every live round loop; used on shutdown.
func (e *CrashEngine) Stop() {
	e.roundsMu.Lock()
	rounds := make([]*CrashRound, 0, len(e.rounds))
	for _, r := range e.rounds {
		rounds = append(rounds, r)
	}
	e.roundsMu.Unlock()

	for _, r := range rounds {
		if r.settleOnce() {
			close(r.stop)
			e.remove(r.ID)
		}
	}
}
