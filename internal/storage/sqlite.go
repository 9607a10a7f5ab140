// Package storage provides the data persistence layer for user preferences.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/textgrab/textgrab/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Preference keys as persisted in the preferences table.
const (
	KeyConfidence          = "confidence"
	KeyPrimaryLanguage     = "primary_language"
	KeyScreenshotDir       = "screenshot_dir"
	KeyAppendSeparator     = "append_separator"
	KeyAlwaysDetectEnglish = "always_detect_english"
	KeyDetectQRCodes       = "detect_qr_codes"
	KeyNotify              = "notify"
	KeyKeepLinebreaks      = "keep_linebreaks"
	KeyAppendToClipboard   = "append_to_clipboard"
	KeyClearClipboard      = "clear_clipboard_first"
	KeyConfirmBeforeCommit = "confirm_before_commit"
	KeyPaused              = "paused"
	KeyLaunchAtLogin       = "launch_at_login"
)

// BoolKeys lists the persisted boolean preference keys.
var BoolKeys = []string{
	KeyAlwaysDetectEnglish,
	KeyDetectQRCodes,
	KeyNotify,
	KeyKeepLinebreaks,
	KeyAppendToClipboard,
	KeyClearClipboard,
	KeyConfirmBeforeCommit,
	KeyPaused,
	KeyLaunchAtLogin,
}

// SQLiteStore implements service.PreferenceStore using SQLite. The in-memory
// record mirrors the table; every mutation writes through before returning.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	prefs  model.Preferences
	mu     sync.RWMutex
}

// NewSQLiteStore opens (creating if needed) the preference database at dbPath,
// runs migrations and loads the persisted record over the defaults.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		prefs:  model.DefaultPreferences(),
	}

	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Snapshot returns an immutable copy of the current preference record.
func (s *SQLiteStore) Snapshot() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetConfidence persists a new confidence level.
func (s *SQLiteStore) SetConfidence(level model.ConfidenceLevel) error {
	if !level.Valid() {
		return fmt.Errorf("%w: confidence level %q", ErrInvalidPreference, level)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(KeyConfidence, string(level)); err != nil {
		return err
	}
	s.prefs.Confidence = level
	return nil
}

// SetPrimaryLanguage persists the primary recognition language code.
func (s *SQLiteStore) SetPrimaryLanguage(code string) error {
	if err := validateString(code, "code"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(KeyPrimaryLanguage, code); err != nil {
		return err
	}
	s.prefs.PrimaryLanguage = code
	return nil
}

// SetScreenshotDir persists the directory watched for new screenshots.
func (s *SQLiteStore) SetScreenshotDir(dir string) error {
	if err := validateString(dir, "dir"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(KeyScreenshotDir, dir); err != nil {
		return err
	}
	s.prefs.ScreenshotDir = dir
	return nil
}

// SetAppendSeparator persists the separator used in append mode.
func (s *SQLiteStore) SetAppendSeparator(sep string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.put(KeyAppendSeparator, sep); err != nil {
		return err
	}
	s.prefs.AppendSeparator = sep
	return nil
}

// SetBool persists one of the boolean preferences. Enabling append mode
// disables clear-first and vice versa: only one clipboard-write mode may
// govern at a time.
func (s *SQLiteStore) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case KeyAppendToClipboard:
		if value {
			if err := s.putBools(map[string]bool{KeyAppendToClipboard: true, KeyClearClipboard: false}); err != nil {
				return err
			}
			s.prefs.AppendToClipboard = true
			s.prefs.ClearClipboardFirst = false
			return nil
		}
		if err := s.put(key, "false"); err != nil {
			return err
		}
		s.prefs.AppendToClipboard = false
		return nil
	case KeyClearClipboard:
		if value {
			if err := s.putBools(map[string]bool{KeyClearClipboard: true, KeyAppendToClipboard: false}); err != nil {
				return err
			}
			s.prefs.ClearClipboardFirst = true
			s.prefs.AppendToClipboard = false
			return nil
		}
		if err := s.put(key, "false"); err != nil {
			return err
		}
		s.prefs.ClearClipboardFirst = false
		return nil
	}

	field, ok := boolField(&s.prefs, key)
	if !ok {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidPreference, key)
	}
	if err := s.put(key, formatBool(value)); err != nil {
		return err
	}
	*field = value
	return nil
}

// GetBool returns the current value of a boolean preference.
func (s *SQLiteStore) GetBool(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch key {
	case KeyAppendToClipboard:
		return s.prefs.AppendToClipboard, nil
	case KeyClearClipboard:
		return s.prefs.ClearClipboardFirst, nil
	}
	field, ok := boolField(&s.prefs, key)
	if !ok {
		return false, fmt.Errorf("%w: unknown key %q", ErrInvalidPreference, key)
	}
	return *field, nil
}

func (s *SQLiteStore) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan preference row: %w", err)
		}
		s.apply(key, value)
	}
	return rows.Err()
}

// apply copies one persisted key/value onto the in-memory record. Unknown
// keys are ignored so older databases keep working.
func (s *SQLiteStore) apply(key, value string) {
	switch key {
	case KeyConfidence:
		if level := model.ConfidenceLevel(value); level.Valid() {
			s.prefs.Confidence = level
		}
	case KeyPrimaryLanguage:
		s.prefs.PrimaryLanguage = value
	case KeyScreenshotDir:
		s.prefs.ScreenshotDir = value
	case KeyAppendSeparator:
		s.prefs.AppendSeparator = value
	default:
		if field, ok := boolField(&s.prefs, key); ok {
			*field = value == "true"
		}
	}
}

func (s *SQLiteStore) put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) putBools(values map[string]bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for key, value := range values {
		if _, err := tx.Exec(
			`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, formatBool(value)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to save preference %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

func boolField(p *model.Preferences, key string) (*bool, bool) {
	switch key {
	case KeyAlwaysDetectEnglish:
		return &p.AlwaysDetectEnglish, true
	case KeyDetectQRCodes:
		return &p.DetectQRCodes, true
	case KeyNotify:
		return &p.Notify, true
	case KeyKeepLinebreaks:
		return &p.KeepLinebreaks, true
	case KeyAppendToClipboard:
		return &p.AppendToClipboard, true
	case KeyClearClipboard:
		return &p.ClearClipboardFirst, true
	case KeyConfirmBeforeCommit:
		return &p.ConfirmBeforeCommit, true
	case KeyPaused:
		return &p.Paused, true
	case KeyLaunchAtLogin:
		return &p.LaunchAtLogin, true
	}
	return nil, false
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
