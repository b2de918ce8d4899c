package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsflix/internal/infra/adapter/persistence/sqlite"
	"newsflix/internal/infra/db"
)

// ─────────────────────────────────────────────
// sqlmock
// ─────────────────────────────────────────────

func TestPreferenceRepo_Get_Found(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value")).
		WithArgs("newsflix.filters").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"category":"Sports","language":"en-us"}`))

	repo := sqlite.NewPreferenceRepo(conn)
	got, found, err := repo.Get(context.Background(), "newsflix.filters")

	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"category":"Sports","language":"en-us"}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepo_Get_Missing(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value")).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	repo := sqlite.NewPreferenceRepo(conn)
	got, found, err := repo.Get(context.Background(), "absent")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestPreferenceRepo_Get_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value")).WillReturnError(boom)

	repo := sqlite.NewPreferenceRepo(conn)
	_, found, err := repo.Get(context.Background(), "k")

	assert.False(t, found)
	assert.ErrorIs(t, err, boom)
}

func TestPreferenceRepo_Put_ExecError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	boom := errors.New("database is locked")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences")).
		WithArgs("k", "v", sqlmock.AnyArg()).
		WillReturnError(boom)

	repo := sqlite.NewPreferenceRepo(conn)
	err = repo.Put(context.Background(), "k", []byte("v"))

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────
// modernc sqlite
// ─────────────────────────────────────────────

func TestPreferenceRepo_RoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	conn, err := db.Open(ctx, db.MemoryPath)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	require.NoError(t, db.MigrateUp(ctx, conn))
	repo := sqlite.NewPreferenceRepo(conn)

	// Act
	require.NoError(t, repo.Put(ctx, "newsflix.filters", []byte(`{"category":"Politics","language":"de-de"}`)))
	require.NoError(t, repo.Put(ctx, "newsflix.filters", []byte(`{"category":"Sports","language":"en-us"}`)))
	got, found, err := repo.Get(ctx, "newsflix.filters")

	// Assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"category":"Sports","language":"en-us"}`, string(got))

	var rows int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM preferences`).Scan(&rows))
	assert.Equal(t, 1, rows, "upsert must not duplicate the key")
}
