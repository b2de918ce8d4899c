package repository

import "context"

// PreferenceRepository stores small opaque values under fixed keys.
// Get reports found=false, with a nil error, for a key that was never written.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}
