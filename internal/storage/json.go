package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/reti/internal/store"
)

// JSONFile keeps the snapshot in a single JSON document.
type JSONFile struct {
	path   string
	pretty bool
	logger zerolog.Logger
}

// NewJSONFile returns a JSON backend. pretty selects indented output.
func NewJSONFile(path string, pretty bool, logger zerolog.Logger) *JSONFile {
	return &JSONFile{
		path:   path,
		pretty: pretty,
		logger: logger.With().Str("component", "storage").Str("backend", KindJSON).Logger(),
	}
}

// Path returns the snapshot file.
func (f *JSONFile) Path() string {
	return f.path
}

// Load reads the snapshot. A missing file yields an empty Store.
func (f *JSONFile) Load(_ context.Context) (*store.Store, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		f.logger.Debug().Str("path", f.path).Msg("no snapshot yet, starting empty")
		return store.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", f.path, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: corrupt JSON in %s: %v", store.ErrFormat, f.path, err)
	}
	st, err := store.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.path, err)
	}
	f.logger.Debug().Str("path", f.path).Int("days", st.Len()).Msg("snapshot loaded")
	return st, nil
}

// Save atomically replaces the snapshot file.
func (f *JSONFile) Save(_ context.Context, st *store.Store) error {
	if err := ensureDir(f.path); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if f.pretty {
		data, err = json.MarshalIndent(st.Snapshot(), "", "  ")
	} else {
		data, err = json.Marshal(st.Snapshot())
	}
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	f.logger.Debug().Str("path", f.path).Int("days", st.Len()).Msg("snapshot saved")
	return nil
}
