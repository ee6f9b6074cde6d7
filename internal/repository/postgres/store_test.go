package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/repository"
	"github.com/xylexgaming/xgi-website/internal/repository/postgres"
	"github.com/xylexgaming/xgi-website/internal/repository/repotest"
	"github.com/xylexgaming/xgi-website/internal/testutil"
	"gorm.io/gorm/logger"
)

func TestStore_SQLite(t *testing.T) {
	repotest.RunStoreTests(t, func(t *testing.T) repository.Store {
		return testutil.NewTestDB(t).Store
	})
}

func TestStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testDB := testutil.NewPostgresTestDB(t)

	repotest.RunStoreTests(t, func(t *testing.T) repository.Store {
		testDB.Truncate(t)
		// the contract closes stores, so hand out a fresh connection each time
		store := postgres.NewStore(postgres.DialectPostgres, testDB.DSN, logger.Silent)
		require.NoError(t, store.Connect(context.Background()))
		t.Cleanup(func() { store.Close(context.Background()) })
		return store
	})
}

func TestStore_ConnectLifecycle(t *testing.T) {
	ctx := context.Background()
	store := postgres.NewStore(postgres.DialectSQLite, ":memory:", logger.Silent)

	assert.True(t, errors.Is(store.Ping(ctx), domain.ErrStoreUnavailable))
	assert.Nil(t, store.DB())

	require.NoError(t, store.Connect(ctx))
	require.NoError(t, store.Ping(ctx))
	// connecting twice keeps the first connection
	db := store.DB()
	require.NoError(t, store.Connect(ctx))
	assert.Same(t, db, store.DB())

	require.NoError(t, store.Close(ctx))
	require.NoError(t, store.Close(ctx))
}

func TestStore_UnknownDialect(t *testing.T) {
	err := postgres.NewStore("mysql", "dsn", logger.Silent).Connect(context.Background())
	assert.Error(t, err)
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	store := testDB.Store
	catalog := store.Catalog()

	empty, err := catalog.Load(ctx, domain.CollectionGames)
	require.NoError(t, err)
	assert.Empty(t, empty)

	games := testutil.RawRecords(t, testutil.GamesFixture()[0], testutil.GamesFixture()[1], testutil.GamesFixture()[2])
	require.NoError(t, store.ReplaceCatalog(ctx, domain.CollectionGames, games))
	techs := testutil.RawRecords(t, testutil.TechnologyFixture()[0])
	require.NoError(t, store.ReplaceCatalog(ctx, domain.CollectionTechnology, techs))

	loaded, err := catalog.Load(ctx, domain.CollectionGames)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, want := range testutil.GamesFixture() {
		var got domain.GameRecord
		require.NoError(t, json.Unmarshal(loaded[i], &got))
		assert.Equal(t, want.Title, got.Title, "position %d", i)
	}

	// replacing a collection drops its previous records only
	require.NoError(t, store.ReplaceCatalog(ctx, domain.CollectionGames, games[:1]))
	loaded, err = catalog.Load(ctx, domain.CollectionGames)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	loadedTech, err := catalog.Load(ctx, domain.CollectionTechnology)
	require.NoError(t, err)
	assert.Len(t, loadedTech, 1)
}
