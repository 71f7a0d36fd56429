package store

import (
	"context"
	"database/sql"
)

type wrongWordRepo struct {
	db *sql.DB
}

func (r *wrongWordRepo) RecordMiss(ctx context.Context, userID, word, meaning string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wrong_words (user_id, word, meaning, wrong_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (user_id, word)
		DO UPDATE SET wrong_count = wrong_count + 1`,
		userID, word, meaning)
	if err != nil {
		return &PersistenceError{Op: "record miss", Err: err}
	}
	return nil
}

func (r *wrongWordRepo) TopMissed(ctx context.Context, userID string, limit int) ([]WrongWord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, word, meaning, wrong_count
		FROM wrong_words
		WHERE user_id = ?
		ORDER BY wrong_count DESC, word ASC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "top missed", Err: err}
	}
	defer rows.Close()

	var out []WrongWord
	for rows.Next() {
		var w WrongWord
		if err := rows.Scan(&w.UserID, &w.Word, &w.Meaning, &w.WrongCount); err != nil {
			return nil, &PersistenceError{Op: "scan wrong word", Err: err}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
