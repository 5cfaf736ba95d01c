// Package store persists local activity: per-answer and per-session
// records for offline stats, the document upload queue, and small
// user preferences. Everything is scoped by a user key so switching
// accounts on one machine keeps data separate.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the gorm handle and exposes typed repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path, applying pragmas and
// running auto-migration.
func Open(path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.AutoMigrate(
		&AnswerRecord{},
		&SessionRecord{},
		&UploadItem{},
		&Preference{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Activity returns the answer/session activity repository.
func (s *Store) Activity() *ActivityRepo {
	return &ActivityRepo{db: s.db}
}

// Uploads returns the upload queue repository.
func (s *Store) Uploads() *UploadRepo {
	return &UploadRepo{db: s.db}
}

// Prefs returns the preferences repository.
func (s *Store) Prefs() *PrefRepo {
	return &PrefRepo{db: s.db}
}

// ClearUser deletes all local data for one user key.
func (s *Store) ClearUser(userKey string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&AnswerRecord{}, &SessionRecord{}, &UploadItem{}, &Preference{}} {
			if err := tx.Where("user_key = ?", userKey).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset wipes all local data for every user.
func (s *Store) Reset() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&AnswerRecord{}, &SessionRecord{}, &UploadItem{}, &Preference{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CAMPUSMATE_DB environment variable
// 2. $XDG_DATA_HOME/campusmate/campusmate.db
// 3. ~/.local/share/campusmate/campusmate.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CAMPUSMATE_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "campusmate", "campusmate.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
