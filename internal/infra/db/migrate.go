package db

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; the schema version is stored in
// PRAGMA user_version and equals the number of applied entries.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS preferences (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at INTEGER NOT NULL
)`,
		// 最近更新された設定の確認用
		`CREATE INDEX IF NOT EXISTS idx_preferences_updated_at ON preferences(updated_at DESC)`,
	},
}

// SchemaVersion is the version MigrateUp brings a database to.
var SchemaVersion = len(migrations)

// MigrateUp applies the migrations the database has not seen yet,
// each in its own transaction. Running it again is a no-op.
func MigrateUp(ctx context.Context, conn *sql.DB) error {
	var current int
	if err := conn.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := current; v < len(migrations); v++ {
		if err := apply(ctx, conn, v+1, migrations[v]); err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	return nil
}

func apply(ctx context.Context, conn *sql.DB, version int, stmts []string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, version)); err != nil {
		return err
	}
	return tx.Commit()
}

// MigrateDown drops every stored preference and resets the schema version.
func MigrateDown(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range []string{
		`DROP INDEX IF EXISTS idx_preferences_updated_at`,
		`DROP TABLE IF EXISTS preferences`,
		`PRAGMA user_version = 0`,
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
