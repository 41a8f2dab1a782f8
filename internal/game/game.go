// apps/go-server/internal/game/game.go
//
// Game owns one player's state and is the only thing that calls Apply for it.
// Responsibilities:
//   - Serialise transitions from HTTP handlers and the auto-advance timer.
//   - Generate rounds with the game's own random source.
//   - Schedule exactly one auto-advance per round completion and drop it if
//     the game is closed, restarted or already advanced (epoch guard).
//   - Publish a snapshot to observers after every applied transition.
package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/words"
)

// DefaultAdvanceDelay is the pause between round_complete and the next round.
const DefaultAdvanceDelay = 2 * time.Second

// Timer is the part of *time.Timer the game needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. It must not call f synchronously.
type Scheduler func(d time.Duration, f func()) Timer

// RealScheduler schedules with time.AfterFunc.
func RealScheduler(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configures New. Zero values pick sensible defaults.
type Options struct {
	Lists        words.Lists
	Rand         *rand.Rand
	AdvanceDelay time.Duration
	Scheduler    Scheduler
}

// Game is safe for concurrent use.
type Game struct {
	ID string

	mu       sync.Mutex
	state    State
	rng      *rand.Rand
	lists    words.Lists
	delay    time.Duration
	schedule Scheduler
	timer    Timer
	epoch    uint64 // bumped whenever a pending advance must be invalidated
	closed   bool

	// notifyMu keeps observer callbacks in transition order without holding mu.
	notifyMu  sync.Mutex
	observers map[int]func(State)
	nextObs   int
}

// New constructs a game in the intro state.
func New(opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler
	}
	return &Game{
		ID:        uuid.NewString(),
		state:     NewState(),
		rng:       opts.Rand,
		lists:     opts.Lists,
		delay:     opts.AdvanceDelay,
		schedule:  opts.Scheduler,
		observers: make(map[int]func(State)),
	}
}

// Start begins (or restarts) the game at round 1 with a zero score.
// Any pending auto-advance from a previous run is discarded.
func (g *Game) Start() State {
	g.mu.Lock()
	if g.closed {
		s := g.state
		g.mu.Unlock()
		return s
	}
	g.cancelAdvanceLocked()
	r := GenerateRound(1, g.rng, g.lists)
	g.state, _ = Apply(g.state, Action{Kind: ActionStart, Round: &r})
	return g.publishAndUnlock()
}

// Select applies a player click. Invalid selections are no-ops.
func (g *Game) Select(itemID string) (State, Outcome) {
	g.mu.Lock()
	if g.closed {
		s := g.state
		g.mu.Unlock()
		return s, Outcome{}
	}
	next, out := Apply(g.state, Action{Kind: ActionSelect, ItemID: itemID})
	if !out.Applied {
		g.mu.Unlock()
		return next, out
	}
	g.state = next
	if out.RoundComplete {
		g.cancelAdvanceLocked()
		epoch := g.epoch
		g.timer = g.schedule(g.delay, func() { g.advance(epoch) })
	}
	g.publishAndUnlock()
	return next, out
}

// advance is the timer callback. It only acts if nothing has invalidated
// the epoch it was scheduled under.
func (g *Game) advance(epoch uint64) {
	g.mu.Lock()
	if g.closed || epoch != g.epoch || g.state.Status != StatusRoundComplete {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	r := GenerateRound(g.state.Round+1, g.rng, g.lists)
	next, out := Apply(g.state, Action{Kind: ActionAdvance, Round: &r})
	if !out.Applied {
		g.mu.Unlock()
		return
	}
	g.state = next
	g.publishAndUnlock()
}

// Snapshot returns the current state. Items must be treated as read-only.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe registers fn to receive a snapshot after every transition.
// fn must not call Start or Select. The returned func unregisters it.
func (g *Game) Subscribe(fn func(State)) (cancel func()) {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()
	id := g.nextObs
	g.nextObs++
	g.observers[id] = fn
	return func() {
		g.notifyMu.Lock()
		defer g.notifyMu.Unlock()
		delete(g.observers, id)
	}
}

// Close tears the game down: the pending advance (if any) is cancelled and
// later transitions become no-ops. Safe to call more than once.
func (g *Game) Close() {
	g.mu.Lock()
	g.closed = true
	g.cancelAdvanceLocked()
	g.mu.Unlock()

	g.notifyMu.Lock()
	g.observers = make(map[int]func(State))
	g.notifyMu.Unlock()
}

// Closed reports whether Close has been called.
func (g *Game) Closed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

func (g *Game) cancelAdvanceLocked() {
	g.epoch++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// publishAndUnlock releases mu, calls observers in order and returns the
// state they saw.
func (g *Game) publishAndUnlock() State {
	s := g.state
	g.notifyMu.Lock()
	g.mu.Unlock()
	defer g.notifyMu.Unlock()
	for _, fn := range g.observers {
		fn(s)
	}
	return s
}
