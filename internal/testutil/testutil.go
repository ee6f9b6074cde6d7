package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/xylexgaming/xgi-website/internal/api"
	"github.com/xylexgaming/xgi-website/internal/config"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"github.com/xylexgaming/xgi-website/internal/repository/file"
	repoPostgres "github.com/xylexgaming/xgi-website/internal/repository/postgres"
	"github.com/xylexgaming/xgi-website/internal/service"
	"github.com/xylexgaming/xgi-website/web"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated gorm database private to one test.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	Store     *repoPostgres.Store
	DSN       string
}

// NewTestDB opens a private in-memory SQLite database.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := repoPostgres.NewConnection(repoPostgres.DialectSQLite, ":memory:", logger.Silent)
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	testDB := &TestDB{
		DB:    db,
		Store: repoPostgres.NewStoreFromDB(db),
		DSN:   ":memory:",
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// NewPostgresTestDB starts a PostgreSQL testcontainer. The test is skipped
// when no container runtime is reachable.
func NewPostgresTestDB(t *testing.T) *TestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_xgi"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := repoPostgres.NewConnection(repoPostgres.DialectPostgres, dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		Store:     repoPostgres.NewStoreFromDB(db),
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup closes the connection and terminates the container, if any.
func (tdb *TestDB) Cleanup() {
	ctx := context.Background()
	if tdb.Store != nil {
		tdb.Store.Close(ctx)
	}
	if tdb.Container != nil {
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"players",
		"newsletter",
		"catalog_entries",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:           "0", // Random port
		Environment:    config.EnvTest,
		CatalogSource:  config.CatalogSourceFile,
		StoreDriver:    config.StoreSQLite,
		SessionSecret:  "test-session-secret-for-testing-only",
		SessionTTL:     time.Hour,
		LogLevel:       "error",
		SearchDebounce: 20 * time.Millisecond,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server     *httptest.Server
	DB         *TestDB
	CatalogDir string
	Repos      *repository.Repositories
	Services   *service.Services
	Config     *config.Config
}

type ServerOption func(*serverOptions)

type serverOptions struct {
	configure func(*config.Config)
	store     repository.Store
}

// WithConfig adjusts the test configuration before the server is built.
func WithConfig(fn func(*config.Config)) ServerOption {
	return func(o *serverOptions) { o.configure = fn }
}

// WithStore replaces the SQLite store, e.g. with a disconnected one.
func WithStore(store repository.Store) ServerOption {
	return func(o *serverOptions) { o.store = store }
}

// NewTestServer creates a complete test server with all dependencies. The
// catalog directory starts with the standard fixtures.
func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()

	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	testDB := NewTestDB(t)
	cfg := TestConfig()
	cfg.DataDir = t.TempDir()
	if o.configure != nil {
		o.configure(cfg)
	}
	WriteCatalog(t, cfg.DataDir, GamesFixture(), TechnologyFixture())

	var store repository.Store = testDB.Store
	if o.store != nil {
		store = o.store
	}

	repos := repository.NewRepositories(file.NewCatalogRepository(cfg.DataDir), store)

	services, err := service.NewServices(repos, cfg)
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}
	router := api.NewRouter(services, store, web.Static(), cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:     server,
		DB:         testDB,
		CatalogDir: cfg.DataDir,
		Repos:      repos,
		Services:   services,
		Config:     cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}
