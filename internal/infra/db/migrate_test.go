package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versionRows(v int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_version"}).AddRow(v)
}

func TestMigrateUp_FreshDatabase(t *testing.T) {
	// Arrange
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(`PRAGMA user_version`).WillReturnRows(versionRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS preferences").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_preferences_updated_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`PRAGMA user_version = 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Act
	err = MigrateUp(context.Background(), conn)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_AlreadyCurrent(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(`PRAGMA user_version`).WillReturnRows(versionRows(SchemaVersion))

	assert.NoError(t, MigrateUp(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_StatementErrorRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(`PRAGMA user_version`).WillReturnRows(versionRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS preferences").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_preferences_updated_at").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = MigrateUp(context.Background(), conn)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "migrate to version 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_VersionReadError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectQuery(`PRAGMA user_version`).WillReturnError(sql.ErrConnDone)

	err = MigrateUp(context.Background(), conn)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestMigrateDown(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectExec("DROP INDEX IF EXISTS idx_preferences_updated_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS preferences").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`PRAGMA user_version = 0`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, MigrateDown(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SQLiteRoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	conn, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	// Act
	require.NoError(t, MigrateUp(ctx, conn))
	require.NoError(t, MigrateUp(ctx, conn))

	// Assert
	var version int
	require.NoError(t, conn.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, SchemaVersion, version)

	var name string
	err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'preferences'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "preferences", name)

	require.NoError(t, MigrateDown(ctx, conn))
	err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'preferences'`).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
