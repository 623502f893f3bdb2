package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/remind/internal/model"
)

// remindersKey is the fixed blob key holding the JSON-serialized
// reminder collection. The key name doubles as an implicit schema
// version: an incompatible payload change gets a new key and a one-time
// migration.
const remindersKey = "reminders_v1"

// SQLiteStore implements the Store interface using a local SQLite
// database as a key-value blob store.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// LoadReminders reads the reminder collection blob. A missing key or a
// blob that fails to decode is treated the same as no data: the
// collection starts empty and the problem is logged, never raised.
func (s *SQLiteStore) LoadReminders(ctx context.Context) ([]model.Reminder, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM blobs WHERE key = ?", remindersKey)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Reminder{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", remindersKey, err)
	}

	var reminders []model.Reminder
	if err := json.Unmarshal([]byte(value), &reminders); err != nil {
		log.Error("discarding corrupt reminder data", "key", remindersKey, "err", err)
		return []model.Reminder{}, nil
	}

	return reminders, nil
}

// SaveReminders replaces the stored collection with the given snapshot.
func (s *SQLiteStore) SaveReminders(ctx context.Context, reminders []model.Reminder) error {
	payload, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("marshaling %d reminders: %w", len(reminders), err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)`,
		remindersKey, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing blob %s: %w", remindersKey, err)
	}

	return nil
}
