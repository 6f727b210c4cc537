// Package sqlite persists presets in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/storage/sqlite/migrations"
	"github.com/grovetools/onair/internal/storage/sqlitemigrate"
	"github.com/grovetools/onair/pkg/models"
)

// Store persists the saved configuration list.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating its directory, and applies the
// embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, oaerrors.New(oaerrors.ErrCodeStorage, "storage path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "create storage directory")
	}
	dsn := clean + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "ping sqlite db")
	}
	if err := sqlitemigrate.Apply(context.Background(), db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "run migrations")
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePresets replaces the stored list with presets, keeping their order.
func (s *Store) SavePresets(ctx context.Context, presets []models.Preset) error {
	if s == nil || s.db == nil {
		return oaerrors.New(oaerrors.ErrCodeStorage, "storage is not configured")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "begin save presets")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presets`); err != nil {
		return oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "clear presets")
	}
	for i, p := range presets {
		snapshot, err := json.Marshal(p.State)
		if err != nil {
			return oaerrors.Wrap(err, oaerrors.ErrCodeStorage, fmt.Sprintf("encode preset %q", p.Name))
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO presets (position, name, saved_at, snapshot) VALUES (?, ?, ?, ?)`,
			i, p.Name, p.SavedAt, string(snapshot),
		); err != nil {
			return oaerrors.Wrap(err, oaerrors.ErrCodeStorage, fmt.Sprintf("insert preset %q", p.Name))
		}
	}
	if err := tx.Commit(); err != nil {
		return oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "commit presets")
	}
	return nil
}

// ListPresets returns the stored presets in save order.
func (s *Store) ListPresets(ctx context.Context) ([]models.Preset, error) {
	if s == nil || s.db == nil {
		return nil, oaerrors.New(oaerrors.ErrCodeStorage, "storage is not configured")
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name, saved_at, snapshot FROM presets ORDER BY position`)
	if err != nil {
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "query presets")
	}
	defer rows.Close()

	presets := []models.Preset{}
	for rows.Next() {
		var (
			p   models.Preset
			raw string
		)
		if err := rows.Scan(&p.Name, &p.SavedAt, &raw); err != nil {
			return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "scan preset")
		}
		if err := json.Unmarshal([]byte(raw), &p.State); err != nil {
			return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, fmt.Sprintf("decode preset %q", p.Name))
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oaerrors.Wrap(err, oaerrors.ErrCodeStorage, "iterate presets")
	}
	return presets, nil
}
