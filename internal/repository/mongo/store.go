// Package mongo persists players and newsletter subscriptions in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	playersCollection    = "players"
	newsletterCollection = "newsletter"
)

type Store struct {
	uri      string
	database string
	timeout  time.Duration

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(uri, database string) *Store {
	return &Store{uri: uri, database: database, timeout: 10 * time.Second}
}

func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}
	if s.uri == "" {
		return fmt.Errorf("MONGODB_URI is not set: %w", domain.ErrStoreUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(s.database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	s.client = client
	s.db = db
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{playersCollection, newsletterCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("create %s email index: %w", name, err)
		}
	}

	byCreated := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	if _, err := db.Collection(playersCollection).Indexes().CreateOne(ctx, byCreated); err != nil {
		return fmt.Errorf("create players createdAt index: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if client == nil {
		return fmt.Errorf("mongo not connected: %w", domain.ErrStoreUnavailable)
	}
	return client.Ping(ctx, nil)
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, fmt.Errorf("mongo not connected: %w", domain.ErrStoreUnavailable)
	}
	return s.db.Collection(name), nil
}

func (s *Store) Players() repository.PlayerRepository {
	return &playerRepository{store: s}
}

func (s *Store) Newsletter() repository.NewsletterRepository {
	return &newsletterRepository{store: s}
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
