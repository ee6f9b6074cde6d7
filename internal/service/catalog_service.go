package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/catalog"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/metrics"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

// CatalogService answers catalog queries. Every call reloads the collection
// from the backing repository.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	validator   *catalog.Validator
}

func NewCatalogService(catalogRepo repository.CatalogRepository, validator *catalog.Validator) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		validator:   validator,
	}
}

// Query returns the records of collection matching search, in storage order.
func (s *CatalogService) Query(ctx context.Context, collection domain.Collection, search string) ([]domain.Record, error) {
	switch collection {
	case domain.CollectionGames:
		games, err := s.Games(ctx, search)
		if err != nil {
			return nil, err
		}
		return toRecords(games), nil
	case domain.CollectionTechnology:
		techs, err := s.Technology(ctx, search)
		if err != nil {
			return nil, err
		}
		return toRecords(techs), nil
	}
	return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
}

func (s *CatalogService) Games(ctx context.Context, search string) ([]domain.GameRecord, error) {
	games, err := s.loadGames(ctx)
	if err != nil {
		return nil, err
	}
	return observed(domain.CollectionGames, domain.Filter(games, search)), nil
}

func (s *CatalogService) Technology(ctx context.Context, search string) ([]domain.TechnologyRecord, error) {
	raw, err := s.catalogRepo.Load(ctx, domain.CollectionTechnology)
	if err != nil {
		return nil, s.unavailable(domain.CollectionTechnology, err)
	}
	techs, err := s.validator.DecodeTechnology(raw)
	if err != nil {
		return nil, s.unavailable(domain.CollectionTechnology, err)
	}
	return observed(domain.CollectionTechnology, domain.Filter(techs, search)), nil
}

// GameBySlug finds the game whose title slugifies to slug.
func (s *CatalogService) GameBySlug(ctx context.Context, slug string) (*domain.GameRecord, error) {
	games, err := s.loadGames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range games {
		if games[i].Slug() == slug {
			return &games[i], nil
		}
	}
	return nil, fmt.Errorf("game %q: %w", slug, domain.ErrNotFound)
}

func (s *CatalogService) loadGames(ctx context.Context) ([]domain.GameRecord, error) {
	raw, err := s.catalogRepo.Load(ctx, domain.CollectionGames)
	if err != nil {
		return nil, s.unavailable(domain.CollectionGames, err)
	}
	games, err := s.validator.DecodeGames(raw)
	if err != nil {
		return nil, s.unavailable(domain.CollectionGames, err)
	}
	return games, nil
}

func (s *CatalogService) unavailable(collection domain.Collection, cause error) error {
	metrics.CatalogQueries.WithLabelValues(string(collection), metrics.OutcomeUnavailable).Inc()
	logrus.WithError(cause).WithField("collection", collection).Error("[catalog] failed to load collection")
	return fmt.Errorf("load %s: %w", collection, domain.ErrStoreUnavailable)
}

func observed[T domain.Record](collection domain.Collection, records []T) []T {
	metrics.CatalogQueries.WithLabelValues(string(collection), metrics.OutcomeOK).Inc()
	return records
}

func toRecords[T domain.Record](records []T) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
