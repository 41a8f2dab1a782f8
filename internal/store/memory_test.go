package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/game"
	"github.com/robalobadob/pinyin-pop/apps/go-server/internal/words"
)

var lists = words.Lists{P: []string{"pa", "po"}, Q: []string{"qi", "qu"}}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Hour)
	g := game.New(game.Options{Lists: lists})

	require.NoError(t, st.Save(ctx, g))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	require.NoError(t, st.Delete(ctx, g.ID))
	_, err = st.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, g.Closed(), "deleted games are torn down")

	require.NoError(t, st.Delete(ctx, "unknown"))
}

func TestMemoryStore_ExpiryClosesGame(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(20 * time.Millisecond)
	g := game.New(game.Options{Lists: lists})
	require.NoError(t, st.Save(ctx, g))

	assert.Eventually(t, g.Closed, 2*time.Second, 10*time.Millisecond)
	_, err := st.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_NoExpiry(t *testing.T) {
	st := NewMemoryStore(0)
	g := game.New(game.Options{Lists: lists})
	require.NoError(t, st.Save(context.Background(), g))
	_, err := st.Get(context.Background(), g.ID)
	assert.NoError(t, err)
}
