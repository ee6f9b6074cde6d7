package repository

import (
	"context"
	"encoding/json"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

// CatalogRepository returns the raw records of a collection in storage order.
type CatalogRepository interface {
	Load(ctx context.Context, collection domain.Collection) ([]json.RawMessage, error)
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByEmail(ctx context.Context, email string) (*domain.Player, error)
	ListNewest(ctx context.Context, limit int) ([]*domain.Player, error)
}

type NewsletterRepository interface {
	Create(ctx context.Context, sub *domain.NewsletterSubscription) error
	GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error)
}

// Store owns the connection to the persistence backend.
type Store interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	Players() PlayerRepository
	Newsletter() NewsletterRepository
}

type Repositories struct {
	Catalog    CatalogRepository
	Player     PlayerRepository
	Newsletter NewsletterRepository
	Store      Store
}

// NewRepositories wires the persistence repositories of store next to the
// given catalog source.
func NewRepositories(catalog CatalogRepository, store Store) *Repositories {
	return &Repositories{
		Catalog:    catalog,
		Player:     store.Players(),
		Newsletter: store.Newsletter(),
		Store:      store,
	}
}
