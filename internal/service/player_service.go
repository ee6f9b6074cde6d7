package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/metrics"
	"github.com/xylexgaming/xgi-website/internal/repository"
)

const (
	DefaultPlayerListLimit = 100
	MaxPlayerListLimit     = 100
)

var (
	ErrEmailExists       = fmt.Errorf("email already exists: %w", domain.ErrConflict)
	ErrAlreadySubscribed = fmt.Errorf("email already subscribed: %w", domain.ErrConflict)
)

type PlayerService struct {
	playerRepo     repository.PlayerRepository
	newsletterRepo repository.NewsletterRepository
	now            func() time.Time
}

func NewPlayerService(playerRepo repository.PlayerRepository, newsletterRepo repository.NewsletterRepository) *PlayerService {
	return &PlayerService{
		playerRepo:     playerRepo,
		newsletterRepo: newsletterRepo,
		now:            time.Now,
	}
}

type RegisterInput struct {
	Username string
	Email    string
}

func (s *PlayerService) Register(ctx context.Context, input RegisterInput) (*domain.Player, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Email) == "" {
		return nil, s.record("player", domain.NewValidationError("username and email are required"))
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, s.record("player", err)
	}

	// Check if email exists
	existing, err := s.playerRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, s.record("player", ErrEmailExists)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, s.record("player", unavailable(err))
	}

	player := &domain.Player{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: s.now().UTC(),
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, s.record("player", ErrEmailExists)
		}
		return nil, s.record("player", unavailable(err))
	}

	return player, s.record("player", nil)
}

// ListPlayers returns up to limit players, newest first. A non-positive limit
// selects the default.
func (s *PlayerService) ListPlayers(ctx context.Context, limit int) ([]*domain.Player, error) {
	if limit <= 0 {
		limit = DefaultPlayerListLimit
	}
	if limit > MaxPlayerListLimit {
		limit = MaxPlayerListLimit
	}

	players, err := s.playerRepo.ListNewest(ctx, limit)
	if err != nil {
		return nil, unavailable(err)
	}
	if players == nil {
		players = []*domain.Player{}
	}
	return players, nil
}

func (s *PlayerService) Subscribe(ctx context.Context, rawEmail string) (*domain.NewsletterSubscription, error) {
	if strings.TrimSpace(rawEmail) == "" {
		return nil, s.record("newsletter", domain.NewValidationError("Email is required"))
	}
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, s.record("newsletter", err)
	}

	existing, err := s.newsletterRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, s.record("newsletter", ErrAlreadySubscribed)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, s.record("newsletter", unavailable(err))
	}

	sub := &domain.NewsletterSubscription{
		ID:           uuid.New().String(),
		Email:        email,
		SubscribedAt: s.now().UTC(),
	}

	if err := s.newsletterRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, s.record("newsletter", ErrAlreadySubscribed)
		}
		return nil, s.record("newsletter", unavailable(err))
	}

	return sub, s.record("newsletter", nil)
}

func (s *PlayerService) record(kind string, err error) error {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrConflict):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeUnavailable
	}
	metrics.Registrations.WithLabelValues(kind, outcome).Inc()
	return err
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email is not a valid address")
	}
	return email, nil
}

// unavailable keeps the store failure kind and hides everything else behind
// ErrStoreUnavailable.
func unavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
