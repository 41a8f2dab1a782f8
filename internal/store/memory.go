// apps/go-server/internal/store/memory.go
//
// In-memory implementation of the Store interface for live games.
//
// Characteristics:
//   - Backed by patrickmn/go-cache; entries expire after a period without Save.
//   - Expired or deleted games are torn down (Game.Close), which cancels any
//     pending auto-advance so no round is generated for an abandoned session.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired ids.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or refreshes a game, resetting its idle expiry.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete removes and tears down a game. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports how many games are live.
	Len() int
}

// memory is a go-cache backed Store implementation.
type memory struct {
	games *cache.Cache
}

// NewMemoryStore constructs a Store whose games expire after ttl of inactivity.
// A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	exp, sweep := ttl, ttl/2
	if ttl <= 0 {
		exp, sweep = cache.NoExpiration, 0
	}
	c := cache.New(exp, sweep)
	c.OnEvicted(func(id string, v any) {
		if g, ok := v.(*game.Game); ok {
			g.Close()
			log.Debug().Str("gameId", id).Msg("game evicted")
		}
	})
	return &memory{games: c}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.games.SetDefault(g.ID, g)
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	if v, ok := m.games.Get(id); ok {
		return v.(*game.Game), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.games.Delete(id)
	return nil
}

func (m *memory) Len() int {
	return m.games.ItemCount()
}
