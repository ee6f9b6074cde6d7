// Package memory is an in-process persistence store with the same uniqueness
// rules as the database backends.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

type Store struct {
	mu          sync.RWMutex
	connected   bool
	players     []*domain.Player
	subscribers []*domain.NewsletterSubscription
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkConnected()
}

func (s *Store) checkConnected() error {
	if !s.connected {
		return fmt.Errorf("memory store closed: %w", domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) Players() repository.PlayerRepository {
	return &playerRepository{store: s}
}

func (s *Store) Newsletter() repository.NewsletterRepository {
	return &newsletterRepository{store: s}
}

type playerRepository struct {
	store *Store
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkConnected(); err != nil {
		return err
	}
	for _, p := range r.store.players {
		if p.Email == player.Email {
			return fmt.Errorf("player email %q: %w", player.Email, domain.ErrConflict)
		}
	}
	stored := *player
	r.store.players = append(r.store.players, &stored)
	return nil
}

func (r *playerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.checkConnected(); err != nil {
		return nil, err
	}
	for _, p := range r.store.players {
		if p.Email == email {
			found := *p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("player email %q: %w", email, domain.ErrNotFound)
}

func (r *playerRepository) ListNewest(ctx context.Context, limit int) ([]*domain.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.checkConnected(); err != nil {
		return nil, err
	}

	players := make([]*domain.Player, 0, len(r.store.players))
	for i := len(r.store.players) - 1; i >= 0; i-- {
		p := *r.store.players[i]
		players = append(players, &p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].CreatedAt.After(players[j].CreatedAt)
	})
	if limit >= 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

type newsletterRepository struct {
	store *Store
}

func (r *newsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.checkConnected(); err != nil {
		return err
	}
	for _, existing := range r.store.subscribers {
		if existing.Email == sub.Email {
			return fmt.Errorf("subscriber %q: %w", sub.Email, domain.ErrConflict)
		}
	}
	stored := *sub
	r.store.subscribers = append(r.store.subscribers, &stored)
	return nil
}

func (r *newsletterRepository) GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if err := r.store.checkConnected(); err != nil {
		return nil, err
	}
	for _, existing := range r.store.subscribers {
		if existing.Email == email {
			found := *existing
			return &found, nil
		}
	}
	return nil, fmt.Errorf("subscriber %q: %w", email, domain.ErrNotFound)
}
