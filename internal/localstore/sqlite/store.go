// Package sqlite provides SQLite-backed persistence for the local mirror.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/satchel/internal/localstore"
	"github.com/louisbranch/satchel/internal/localstore/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/satchel/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for locally mirrored data.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a local mirror SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetPreference loads one per-user preference value.
func (s *Store) GetPreference(ctx context.Context, userID, key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	key = strings.TrimSpace(key)
	if userID == "" || key == "" {
		return "", false, fmt.Errorf("user id and preference key are required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT pref_value FROM user_prefs WHERE user_id = ? AND pref_key = ?`,
		userID,
		key,
	)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}

// SetPreference upserts one per-user preference value.
func (s *Store) SetPreference(ctx context.Context, userID, key, value string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	key = strings.TrimSpace(key)
	if userID == "" || key == "" {
		return fmt.Errorf("user id and preference key are required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO user_prefs (user_id, pref_key, pref_value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, pref_key) DO UPDATE SET
		   pref_value = excluded.pref_value,
		   updated_at = excluded.updated_at`,
		userID,
		key,
		value,
		timeToUnixMillis(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// DeletePreference removes one per-user preference value.
func (s *Store) DeletePreference(ctx context.Context, userID, key string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	key = strings.TrimSpace(key)
	if userID == "" || key == "" {
		return fmt.Errorf("user id and preference key are required")
	}

	if _, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM user_prefs WHERE user_id = ? AND pref_key = ?`,
		userID,
		key,
	); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

// withTx runs fn inside one transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ localstore.Store = (*Store)(nil)
