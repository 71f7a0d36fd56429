package store

import (
	"database/sql"
	"fmt"
)

// migrations run in order inside one transaction. Statements must be
// idempotent; the store migrates on every Open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id              TEXT PRIMARY KEY,
		current_level        TEXT,
		total_complete_count INTEGER NOT NULL DEFAULT 0,
		last_test_count      INTEGER NOT NULL DEFAULT 0,
		streak               INTEGER NOT NULL DEFAULT 0,
		last_visit_date      TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS study_logs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id      TEXT NOT NULL,
		session_id   TEXT NOT NULL DEFAULT '',
		study_date   TEXT NOT NULL,
		completed_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_logs_user ON study_logs (user_id, study_date)`,

	`CREATE TABLE IF NOT EXISTS wrong_words (
		user_id     TEXT NOT NULL,
		word        TEXT NOT NULL,
		meaning     TEXT NOT NULL,
		wrong_count INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (user_id, word)
	)`,

	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     TIMESTAMP NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_requests_time ON llm_requests (timestamp)`,
}

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range migrations {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return tx.Commit()
}
