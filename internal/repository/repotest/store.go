// Package repotest holds behaviour checks shared by every persistence store.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

// RunStoreTests exercises store against the rules all backends share. newStore
// must return a connected, empty store.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("player create and lookup", func(t *testing.T) {
		ctx := context.Background()
		players := newStore(t).Players()

		p := newPlayer("ava", "ava@example.com", time.Now())
		require.NoError(t, players.Create(ctx, p))

		got, err := players.GetByEmail(ctx, "ava@example.com")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "ava", got.Username)

		_, err = players.GetByEmail(ctx, "nobody@example.com")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("duplicate player email conflicts", func(t *testing.T) {
		ctx := context.Background()
		players := newStore(t).Players()

		require.NoError(t, players.Create(ctx, newPlayer("first", "dup@example.com", time.Now())))
		err := players.Create(ctx, newPlayer("second", "dup@example.com", time.Now()))
		assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

		list, err := players.ListNewest(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "first", list[0].Username)
	})

	t.Run("players listed newest first", func(t *testing.T) {
		ctx := context.Background()
		players := newStore(t).Players()

		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, players.Create(ctx, newPlayer("old", "old@example.com", base)))
		require.NoError(t, players.Create(ctx, newPlayer("newest", "newest@example.com", base.Add(2*time.Hour))))
		require.NoError(t, players.Create(ctx, newPlayer("middle", "middle@example.com", base.Add(time.Hour))))

		list, err := players.ListNewest(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"newest", "middle", "old"}, usernames(list))

		limited, err := players.ListNewest(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"newest", "middle"}, usernames(limited))
	})

	t.Run("empty player list", func(t *testing.T) {
		list, err := newStore(t).Players().ListNewest(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("newsletter subscriptions are unique", func(t *testing.T) {
		ctx := context.Background()
		newsletter := newStore(t).Newsletter()

		sub := &domain.NewsletterSubscription{ID: uuid.NewString(), Email: "fan@example.com", SubscribedAt: time.Now().UTC()}
		require.NoError(t, newsletter.Create(ctx, sub))

		got, err := newsletter.GetByEmail(ctx, "fan@example.com")
		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)

		again := &domain.NewsletterSubscription{ID: uuid.NewString(), Email: "fan@example.com", SubscribedAt: time.Now().UTC()}
		err = newsletter.Create(ctx, again)
		assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

		_, err = newsletter.GetByEmail(ctx, "other@example.com")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	})

	t.Run("closed store is unavailable", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		require.NoError(t, store.Ping(ctx))
		require.NoError(t, store.Close(ctx))

		assert.True(t, errors.Is(store.Ping(ctx), domain.ErrStoreUnavailable))

		err := store.Players().Create(ctx, newPlayer("late", "late@example.com", time.Now()))
		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable), "got %v", err)

		_, err = store.Newsletter().GetByEmail(ctx, "late@example.com")
		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable), "got %v", err)
	})
}

func newPlayer(username, email string, createdAt time.Time) *domain.Player {
	return &domain.Player{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: createdAt.UTC(),
	}
}

func usernames(players []*domain.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Username
	}
	return out
}
