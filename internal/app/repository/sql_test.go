package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqlitePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "barcos.db")
}

func newSQLiteRepo(t *testing.T) (*SQLRepository, string) {
	t.Helper()
	path := sqlitePath(t)
	repo := NewSQL(func() gorm.Dialector { return sqlite.Open(path) })
	require.NoError(t, repo.Migrate(context.Background()))
	return repo, path
}

// rawDB opens a side connection to the database file for seeding and
// inspecting rows directly.
func rawDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSQLInsertWritesNullForUnusedColumn(t *testing.T) {
	ctx := context.Background()
	repo, path := newSQLiteRepo(t)

	_, err := repo.Insert(ctx, mustSailing(t, "Vel-001", "colombiana", 100, 8))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, mustCargo(t, "Car-001", "peruana", 500, true))
	require.NoError(t, err)

	db := rawDB(t, path)
	var passengers, liquids sql.NullInt64
	var kind string

	err = db.Raw("SELECT passenger_count, carries_liquids, type FROM ships WHERE registration_id = ?", "Vel-001").
		Row().Scan(&passengers, &liquids, &kind)
	require.NoError(t, err)
	assert.Equal(t, sql.NullInt64{Int64: 8, Valid: true}, passengers)
	assert.False(t, liquids.Valid)
	assert.Equal(t, "velero", kind)

	err = db.Raw("SELECT passenger_count, carries_liquids, type FROM ships WHERE registration_id = ?", "Car-001").
		Row().Scan(&passengers, &liquids, &kind)
	require.NoError(t, err)
	assert.False(t, passengers.Valid)
	assert.Equal(t, sql.NullInt64{Int64: 1, Valid: true}, liquids)
	assert.Equal(t, "carguero", kind)
}

func TestSQLInsertBindsUserStrings(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSQLiteRepo(t)

	hostile := "x'); DROP TABLE ships; --"
	ok, err := repo.Insert(ctx, mustCargo(t, hostile, "o'brien", 10, false))
	require.NoError(t, err)
	assert.True(t, ok)

	got, found, err := repo.FindByRegistrationID(ctx, hostile)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "o'brien", got.Nationality())

	ships, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ships, 1)
}

func TestSQLListSkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	repo, path := newSQLiteRepo(t)
	_, err := repo.Insert(ctx, mustCargo(t, "good", "chilena", 10, false))
	require.NoError(t, err)

	db := rawDB(t, path)
	insert := "INSERT INTO ships (registration_id, nationality, volume, passenger_count, carries_liquids, type) VALUES (?, ?, ?, ?, ?, ?)"
	require.NoError(t, db.Exec(insert, "unknown", "x", 10, nil, nil, "lancha").Error)
	require.NoError(t, db.Exec(insert, "huge", "x", 5000, nil, 0, "carguero").Error)
	require.NoError(t, db.Exec(insert, "text-volume", "x", "abc", 1, nil, "velero").Error)
	require.NoError(t, db.Exec(insert, "upper", "x", 20, 3, nil, "VELERO").Error)

	ships, err := repo.ListAll(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(ships))
	for _, s := range ships {
		got = append(got, s.RegistrationID())
	}
	assert.ElementsMatch(t, []string{"good", "upper"}, got)

	ship, found, err := repo.FindByRegistrationID(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, found, "a malformed row reads as absent")
	assert.Nil(t, ship)
}

func TestSQLStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	path := sqlitePath(t)
	// No Migrate: the table does not exist.
	repo := NewSQL(func() gorm.Dialector { return sqlite.Open(path) })

	ships, err := repo.ListAll(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, ships)

	_, found, err := repo.FindByRegistrationID(ctx, "x")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.False(t, found)

	ok, err := repo.Insert(ctx, mustCargo(t, "x", "y", 1, false))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.False(t, ok)
}

func TestSQLOpensFreshConnectionPerOperation(t *testing.T) {
	ctx := context.Background()
	path := sqlitePath(t)
	opened := 0
	repo := NewSQL(func() gorm.Dialector {
		opened++
		return sqlite.Open(path)
	})

	require.NoError(t, repo.Migrate(ctx))
	_, err := repo.Insert(ctx, mustCargo(t, "A", "x", 1, false))
	require.NoError(t, err)
	_, _, err = repo.FindByRegistrationID(ctx, "A")
	require.NoError(t, err)
	_, err = repo.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, opened)
}

func TestSQLReleasesConnectionOnEveryPath(t *testing.T) {
	ctx := context.Background()
	path := sqlitePath(t)
	var pools []*sql.DB
	repo := NewSQL(func() gorm.Dialector {
		pool, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		pools = append(pools, pool)
		return &sqlite.Dialector{DSN: path, Conn: pool}
	})

	assertReleased := func(step string) {
		t.Helper()
		require.NotEmpty(t, pools)
		assert.Equal(t, 0, pools[len(pools)-1].Stats().OpenConnections, step)
	}

	// Table missing: every operation fails.
	_, err := repo.ListAll(ctx)
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assertReleased("failed list")
	_, _, err = repo.FindByRegistrationID(ctx, "x")
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assertReleased("failed find")
	_, err = repo.Insert(ctx, mustCargo(t, "x", "y", 1, false))
	require.ErrorIs(t, err, ErrStorageUnavailable)
	assertReleased("failed insert")

	require.NoError(t, repo.Migrate(ctx))
	assertReleased("migrate")

	_, found, err := repo.FindByRegistrationID(ctx, "x")
	require.NoError(t, err)
	require.False(t, found)
	assertReleased("empty find")

	_, err = repo.Insert(ctx, mustCargo(t, "x", "y", 1, false))
	require.NoError(t, err)
	assertReleased("insert")

	ships, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, ships, 1)
	assertReleased("list")

	assert.Len(t, pools, 7)
}
