package postgres

import (
	"context"

	"github.com/xylexgaming/xgi-website/internal/domain"
)

type newsletterRepository struct {
	store *Store
}

func (r *newsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscription) error {
	db, err := r.store.conn()
	if err != nil {
		return err
	}
	return translateError(db.WithContext(ctx).Create(sub).Error)
}

func (r *newsletterRepository) GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}
	var sub domain.NewsletterSubscription
	if err := db.WithContext(ctx).First(&sub, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}
