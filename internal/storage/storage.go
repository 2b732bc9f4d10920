// Package storage persists Store snapshots. Every backend replaces the
// previous snapshot atomically: a failed save leaves it untouched.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/reti/internal/store"
)

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// ErrExists is returned by Init when a snapshot is already present.
var ErrExists = errors.New("storage: snapshot already exists")

// Backend loads and saves complete Store snapshots.
type Backend interface {
	// Load returns the persisted Store, or an empty one when nothing has
	// been saved yet.
	Load(ctx context.Context) (*store.Store, error)
	// Save replaces the persisted snapshot with st.
	Save(ctx context.Context, st *store.Store) error
	// Path returns the location of the snapshot.
	Path() string
}

// Open returns the backend of the given kind at path.
func Open(kind, path string, pretty bool, logger zerolog.Logger) (Backend, error) {
	if path == "" {
		return nil, errors.New("storage: empty snapshot path")
	}
	switch kind {
	case KindJSON, "":
		return NewJSONFile(path, pretty, logger), nil
	case KindSQLite:
		return NewSQLite(path, logger), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", kind)
	}
}

// Init saves st to b unless a snapshot already exists there.
func Init(ctx context.Context, b Backend, st *store.Store) error {
	if _, err := os.Stat(b.Path()); err == nil {
		return fmt.Errorf("%w at %s", ErrExists, b.Path())
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("storage error checking %s: %w", b.Path(), err)
	}
	return b.Save(ctx, st)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	return nil
}
