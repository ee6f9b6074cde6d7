package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

func NewConnection(dialect, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm dialect %q", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		// every pooled connection to an in-memory database is a separate database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table owned by this backend.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Player{},
		&domain.NewsletterSubscription{},
		&domain.CatalogEntry{},
	)
}

// Store is the gorm-backed persistence store. It is usable against either
// PostgreSQL or SQLite.
type Store struct {
	dialect  string
	dsn      string
	logLevel logger.LogLevel

	mu sync.RWMutex
	db *gorm.DB
}

func NewStore(dialect, dsn string, logLevel logger.LogLevel) *Store {
	return &Store{dialect: dialect, dsn: dsn, logLevel: logLevel}
}

// NewStoreFromDB wraps an already opened and migrated connection.
func NewStoreFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := NewConnection(s.dialect, s.dsn, s.logLevel)
	if err != nil {
		return fmt.Errorf("connect %s: %w", s.dialect, err)
	}
	if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connect %s: %w", s.dialect, err)
	}
	s.db = db
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB returns the live connection, or nil before Connect.
func (s *Store) DB() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) conn() (*gorm.DB, error) {
	db := s.DB()
	if db == nil {
		return nil, fmt.Errorf("%s store not connected: %w", s.dialect, domain.ErrStoreUnavailable)
	}
	return db, nil
}

func (s *Store) Players() repository.PlayerRepository {
	return &playerRepository{store: s}
}

func (s *Store) Newsletter() repository.NewsletterRepository {
	return &newsletterRepository{store: s}
}

// Catalog exposes the catalog_entries table as a catalog source.
func (s *Store) Catalog() repository.CatalogRepository {
	return &catalogRepository{store: s}
}

// translateError maps gorm failures onto the domain taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
