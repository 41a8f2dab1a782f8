// apps/go-server/internal/speech/sqlite.go
//
// On-disk tier of the speech cache.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Storing and loading raw PCM keyed by the original label.
//
// Only synthesized audio lives here; no player data is ever written.

package speech

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// PCMStore persists raw PCM between restarts.
type PCMStore interface {
	Load(ctx context.Context, label string) ([]byte, bool, error)
	Store(ctx context.Context, label string, pcm []byte) error
}

// migrations are applied in order; names are recorded in _migrations.
var migrations = []struct{ name, sql string }{
	{"001_speech_cache", `CREATE TABLE IF NOT EXISTS speech_cache (
		label       TEXT PRIMARY KEY,
		sample_rate INTEGER NOT NULL,
		pcm         BLOB NOT NULL,
		created_at  TEXT NOT NULL DEFAULT (datetime('now'))
	);`},
}

// SQLiteStore is a PCMStore backed by a SQLite file.
type SQLiteStore struct {
	db         *sql.DB
	sampleRate int
}

// OpenSQLiteStore opens (creating if missing) the cache database at dsn and
// migrates it.
func OpenSQLiteStore(dsn string, sampleRate int) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, sampleRate: sampleRate}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load returns the cached PCM for label. Rows recorded at another sample
// rate are treated as misses.
func (s *SQLiteStore) Load(ctx context.Context, label string) ([]byte, bool, error) {
	var (
		rate int
		pcm  []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT sample_rate, pcm FROM speech_cache WHERE label=?`, label,
	).Scan(&rate, &pcm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", label, err)
	}
	if rate != s.sampleRate {
		return nil, false, nil
	}
	return pcm, true, nil
}

// Store upserts the PCM for label.
func (s *SQLiteStore) Store(ctx context.Context, label string, pcm []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO speech_cache (label, sample_rate, pcm) VALUES (?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET sample_rate=excluded.sample_rate, pcm=excluded.pcm`,
		label, s.sampleRate, pcm,
	)
	if err != nil {
		return fmt.Errorf("store %q: %w", label, err)
	}
	return nil
}

// openDB opens a SQLite file, creating its parent directory when needed.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies each pending migration inside its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Info().Str("migration", m.name).Msg("applied")
	}
	return nil
}
