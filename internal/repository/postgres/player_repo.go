package postgres

import (
	"context"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

type playerRepository struct {
	store *Store
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	db, err := r.store.conn()
	if err != nil {
		return err
	}
	return translateError(db.WithContext(ctx).Create(player).Error)
}

func (r *playerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}
	var player domain.Player
	if err := db.WithContext(ctx).First(&player, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &player, nil
}

func (r *playerRepository) ListNewest(ctx context.Context, limit int) ([]*domain.Player, error) {
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}
	var players []*domain.Player
	err = db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&players).Error
	if err != nil {
		return nil, translateError(err)
	}
	return players, nil
}
