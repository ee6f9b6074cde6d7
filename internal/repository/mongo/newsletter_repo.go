package mongo

import (
	"context"

	"github.com/xylexgaming/xgi-website/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
)

type newsletterRepository struct {
	store *Store
}

func (r *newsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscription) error {
	coll, err := r.store.collection(newsletterCollection)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, sub)
	return translateError(err)
}

func (r *newsletterRepository) GetByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	coll, err := r.store.collection(newsletterCollection)
	if err != nil {
		return nil, err
	}
	var sub domain.NewsletterSubscription
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}
