package store

import (
	"context"
	"database/sql"
)

type studyLogRepo struct {
	db *sql.DB
}

func (r *studyLogRepo) Append(ctx context.Context, log StudyLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO study_logs (user_id, session_id, study_date, completed_at)
		VALUES (?, ?, ?, ?)`,
		log.UserID, log.SessionID, log.StudyDate, log.CompletedAt)
	if err != nil {
		return &PersistenceError{Op: "append study log", Err: err}
	}
	return nil
}

func (r *studyLogRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM study_logs WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, &PersistenceError{Op: "count study logs", Err: err}
	}
	return n, nil
}
