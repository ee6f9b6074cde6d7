package mongo

import (
	"context"

	"github.com/xylexgaming/xgi-website/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type playerRepository struct {
	store *Store
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	coll, err := r.store.collection(playersCollection)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, player)
	return translateError(err)
}

func (r *playerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	coll, err := r.store.collection(playersCollection)
	if err != nil {
		return nil, err
	}
	var player domain.Player
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&player); err != nil {
		return nil, translateError(err)
	}
	return &player, nil
}

func (r *playerRepository) ListNewest(ctx context.Context, limit int) ([]*domain.Player, error) {
	coll, err := r.store.collection(playersCollection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	players := make([]*domain.Player, 0)
	if err := cursor.All(ctx, &players); err != nil {
		return nil, translateError(err)
	}
	return players, nil
}
