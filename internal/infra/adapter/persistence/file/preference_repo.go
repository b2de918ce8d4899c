// Package file stores preferences as one JSON document per key on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"newsflix/internal/repository"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

type PreferenceRepo struct {
	dir string
}

// NewPreferenceRepo stores each key as <dir>/<key>.json.
// The directory is created on first write.
func NewPreferenceRepo(dir string) repository.PreferenceRepository {
	return &PreferenceRepo{dir: dir}
}

func (repo *PreferenceRepo) path(key string) string {
	return filepath.Join(repo.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (repo *PreferenceRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(repo.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Get: ReadFile: %w", err)
	}
	return data, true, nil
}

// Put writes value atomically: a crash leaves either the old or the new document.
func (repo *PreferenceRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(repo.dir, 0o700); err != nil {
		return fmt.Errorf("Put: MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(repo.dir, ".pref-*")
	if err != nil {
		return fmt.Errorf("Put: CreateTemp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("Put: Write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("Put: Sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("Put: Close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("Put: Chmod: %w", err)
	}
	if err := os.Rename(tmpName, repo.path(key)); err != nil {
		return fmt.Errorf("Put: Rename: %w", err)
	}
	return nil
}
