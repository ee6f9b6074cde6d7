package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"github.com/xylexgaming/xgi-website/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.RunStoreTests(t, func(t *testing.T) repository.Store {
		s := NewStore()
		require.NoError(t, s.Connect(context.Background()))
		return s
	})
}

func TestStore_StartsDisconnected(t *testing.T) {
	s := NewStore()
	err := s.Ping(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Connect(ctx))

	p := &domain.Player{ID: "1", Username: "ava", Email: "ava@example.com"}
	require.NoError(t, s.Players().Create(ctx, p))
	p.Username = "changed"

	got, err := s.Players().GetByEmail(ctx, "ava@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ava", got.Username)
}
