package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/Tiliavir/reti/internal/model"
	"github.com/Tiliavir/reti/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS days (
	date  TEXT PRIMARY KEY,
	parts TEXT NOT NULL
);`

// SQLite keeps the snapshot in an SQLite database, one row per day.
type SQLite struct {
	path   string
	logger zerolog.Logger
}

// NewSQLite returns an SQLite backend at path.
func NewSQLite(path string, logger zerolog.Logger) *SQLite {
	return &SQLite{
		path:   path,
		logger: logger.With().Str("component", "storage").Str("backend", KindSQLite).Logger(),
	}
}

// Path returns the database file.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// Load reads the snapshot. A missing database yields an empty Store.
func (s *SQLite) Load(ctx context.Context) (*store.Store, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.logger.Debug().Str("path", s.path).Msg("no database yet, starting empty")
		return store.New(), nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap := store.Snapshot{Days: map[string]store.DayRecord{}}

	var fee string
	err = db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'fee'`).Scan(&fee)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("failed to read fee: %w", err)
	default:
		f, err := strconv.ParseFloat(fee, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: fee %q", store.ErrFormat, fee)
		}
		snap.Fee = float32(f)
	}

	rows, err := db.QueryContext(ctx, `SELECT date, parts FROM days`)
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var date, raw string
		if err := rows.Scan(&date, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		var parts []model.Part
		if err := json.Unmarshal([]byte(raw), &parts); err != nil {
			return nil, fmt.Errorf("%w: parts of %s: %v", store.ErrFormat, date, err)
		}
		snap.Days[date] = store.DayRecord{Parts: parts}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read days: %w", err)
	}

	st, err := store.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.logger.Debug().Str("path", s.path).Int("days", st.Len()).Msg("snapshot loaded")
	return st, nil
}

// Save replaces every row inside one transaction.
func (s *SQLite) Save(ctx context.Context, st *store.Store) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := st.Snapshot()
	if _, err := tx.ExecContext(ctx, `DELETE FROM days`); err != nil {
		return fmt.Errorf("failed to clear days: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO days (date, parts) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()
	for date, rec := range snap.Days {
		raw, err := json.Marshal(rec.Parts)
		if err != nil {
			return fmt.Errorf("failed to encode parts of %s: %w", date, err)
		}
		if _, err := stmt.ExecContext(ctx, date, string(raw)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", date, err)
		}
	}
	fee := strconv.FormatFloat(float64(snap.Fee), 'f', -1, 32)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('fee', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fee); err != nil {
		return fmt.Errorf("failed to save fee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	s.logger.Debug().Str("path", s.path).Int("days", len(snap.Days)).Msg("snapshot saved")
	return nil
}
