package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"newsflix/internal/repository"
)

type PreferenceRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewPreferenceRepo(db *sql.DB) repository.PreferenceRepository {
	return &PreferenceRepo{db: db, now: time.Now}
}

func (repo *PreferenceRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `
SELECT value
FROM preferences
WHERE key = ?
LIMIT 1`
	var value string
	err := repo.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return []byte(value), true, nil
}

func (repo *PreferenceRepo) Put(ctx context.Context, key string, value []byte) error {
	const query = `
INSERT INTO preferences (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value      = excluded.value,
    updated_at = excluded.updated_at`
	if _, err := repo.db.ExecContext(ctx, query, key, string(value), repo.now().Unix()); err != nil {
		return fmt.Errorf("Put: ExecContext: %w", err)
	}
	return nil
}
