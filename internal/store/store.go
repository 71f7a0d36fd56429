package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs migrations.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the user profile repository.
func (s *Store) Users() UserRepo {
	return &userRepo{db: s.db}
}

// StudyLogs returns the study log repository.
func (s *Store) StudyLogs() StudyLogRepo {
	return &studyLogRepo{db: s.db}
}

// WrongWords returns the wrong-word repository.
func (s *Store) WrongWords() WrongWordRepo {
	return &wrongWordRepo{db: s.db}
}

// LLMEvents returns the model request event repository.
func (s *Store) LLMEvents() LLMEventRepo {
	return &llmEventRepo{db: s.db}
}

// ResetUser deletes all learning data for one user. Model request
// events are global and survive a reset.
func (s *Store) ResetUser(ctx context.Context, userID string) error {
	stmts := []string{
		"DELETE FROM wrong_words WHERE user_id = ?",
		"DELETE FROM study_logs WHERE user_id = ?",
		"DELETE FROM users WHERE user_id = ?",
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q, userID); err != nil {
			return fmt.Errorf("reset user: %w", err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGOZ_DB environment variable
// 2. $XDG_DATA_HOME/lingoz/lingoz.db
// 3. ~/.local/share/lingoz/lingoz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGOZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingoz", "lingoz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
