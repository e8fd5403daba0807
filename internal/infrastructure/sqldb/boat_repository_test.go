package sqldb

import (
	"context"
	"os"
	"testing"

	"github.com/martijn/boatapi/internal/api/util"
	"github.com/martijn/boatapi/internal/core/domain"
	"github.com/martijn/boatapi/internal/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// newPostgresDB connects to DATABASE_URL and empties the boat table.
// It skips the test if DATABASE_URL is not set.
func newPostgresDB(t *testing.T) *DB {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL tests")
	}

	ctx := context.Background()
	db, err := New(ctx, DriverPostgres, databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, `TRUNCATE boat RESTART IDENTITY`)
	require.NoError(t, err)
	return db
}

func TestBoatRepository_SQLite(t *testing.T) {
	runBoatRepositorySuite(t, newSQLiteDB)
}

func TestBoatRepository_Postgres(t *testing.T) {
	runBoatRepositorySuite(t, newPostgresDB)
}

func runBoatRepositorySuite(t *testing.T, open func(t *testing.T) *DB) {
	t.Run("save assigns distinct ids", func(t *testing.T) {
		repo := NewBoatRepository(open(t))
		ctx := context.Background()

		first, err := repo.Save(ctx, domain.NewBoat("Orca", "sail"))
		require.NoError(t, err)
		second, err := repo.Save(ctx, domain.NewBoat("Narwhal", ""))
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.NotZero(t, second.ID)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("save does not mutate its argument", func(t *testing.T) {
		repo := NewBoatRepository(open(t))

		input := domain.NewBoat("Orca", "sail")
		saved, err := repo.Save(context.Background(), input)
		require.NoError(t, err)

		assert.Zero(t, input.ID)
		assert.NotZero(t, saved.ID)
	})

	t.Run("find by id returns stored record", func(t *testing.T) {
		repo := NewBoatRepository(open(t))
		ctx := context.Background()

		saved, err := repo.Save(ctx, domain.NewBoat("Orca", "sail"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved, found)
	})

	t.Run("find by id reports absence", func(t *testing.T) {
		repo := NewBoatRepository(open(t))

		_, err := repo.FindByID(context.Background(), 4242)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("save with id overwrites", func(t *testing.T) {
		repo := NewBoatRepository(open(t))
		ctx := context.Background()

		saved, err := repo.Save(ctx, domain.NewBoat("Orca", "sail"))
		require.NoError(t, err)

		_, err = repo.Save(ctx, &domain.Boat{ID: saved.ID, Name: "Orca II", Description: ""})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Orca II", found.Name)
		assert.Equal(t, "", found.Description)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := NewBoatRepository(open(t))
		ctx := context.Background()

		saved, err := repo.Save(ctx, domain.NewBoat("Orca", "sail"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, saved.ID))
		require.NoError(t, repo.Delete(ctx, saved.ID))

		_, err = repo.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("find all on empty table", func(t *testing.T) {
		repo := NewBoatRepository(open(t))

		boats, err := repo.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, boats)
		assert.Empty(t, boats)
	})

	t.Run("list filters orders and paginates", func(t *testing.T) {
		repo := NewBoatRepository(open(t))
		ctx := context.Background()

		for _, name := range []string{"Orca", "Narwhal", "Beluga", "Orca Minor", "Dolphin"} {
			_, err := repo.Save(ctx, domain.NewBoat(name, ""))
			require.NoError(t, err)
		}

		filter := repository.BoatFilter{ListFilter: util.ListFilter{
			Filters: []util.QueryFilter{{Field: "name", Operator: util.OpLike, Value: "Orca%"}},
			Order:   []util.OrderClause{{Field: "name", Direction: util.OrderDesc}},
		}}
		boats, err := repo.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, boats, 2)
		assert.Equal(t, "Orca Minor", boats[0].Name)
		assert.Equal(t, "Orca", boats[1].Name)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		page := repository.BoatFilter{ListFilter: util.ListFilter{Page: 2, PerPage: 2}}
		boats, err = repo.List(ctx, page)
		require.NoError(t, err)
		require.Len(t, boats, 2)
		assert.Equal(t, "Beluga", boats[0].Name)

		byID := repository.BoatFilter{ListFilter: util.ListFilter{
			Filters: []util.QueryFilter{{Field: "id", Operator: util.OpIn, Value: []string{"1", "5"}}},
		}}
		boats, err = repo.List(ctx, byID)
		require.NoError(t, err)
		assert.Len(t, boats, 2)
	})

	t.Run("list rejects non-numeric id filter", func(t *testing.T) {
		repo := NewBoatRepository(open(t))

		filter := repository.BoatFilter{ListFilter: util.ListFilter{
			Filters: []util.QueryFilter{{Field: "id", Operator: util.OpGt, Value: "abc"}},
		}}
		_, err := repo.List(context.Background(), filter)
		assert.ErrorIs(t, err, repository.ErrInvalidFilter)

		_, err = repo.Count(context.Background(), filter)
		assert.ErrorIs(t, err, repository.ErrInvalidFilter)
	})
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestMigrate_IsRepeatable(t *testing.T) {
	db := newSQLiteDB(t)
	assert.NoError(t, db.Migrate(context.Background()))
	assert.Equal(t, DriverSQLite, db.Driver())
}
