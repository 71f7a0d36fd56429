package store

import (
	"context"
	"database/sql"
	"errors"
)

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Get(ctx context.Context, userID string) (*UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, COALESCE(current_level, ''), total_complete_count,
		       last_test_count, streak, COALESCE(last_visit_date, '')
		FROM users WHERE user_id = ?`, userID)

	var p UserProfile
	err := row.Scan(&p.UserID, &p.CurrentLevel, &p.TotalCompleteCount,
		&p.LastTestCount, &p.Streak, &p.LastVisitDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get user", Err: err}
	}
	return &p, nil
}

func (r *userRepo) GetOrCreate(ctx context.Context, userID string) (*UserProfile, error) {
	p, err := r.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (user_id) VALUES (?)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "create user", Err: err}
	}
	return r.Get(ctx, userID)
}

func (r *userRepo) UpdateAttendance(ctx context.Context, userID, visitDate string, streak int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_visit_date = ?, streak = ? WHERE user_id = ?`,
		visitDate, streak, userID)
	if err != nil {
		return &PersistenceError{Op: "update attendance", Err: err}
	}
	return checkUpdated(res, "update attendance")
}

func (r *userRepo) CommitLevel(ctx context.Context, userID, level string, lastTestCount int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET current_level = ?, last_test_count = ? WHERE user_id = ?`,
		level, lastTestCount, userID)
	if err != nil {
		return &PersistenceError{Op: "commit level", Err: err}
	}
	return checkUpdated(res, "commit level")
}

func (r *userRepo) IncrementCompleteCount(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET total_complete_count = total_complete_count + 1
		WHERE user_id = ?`, userID)
	if err != nil {
		return &PersistenceError{Op: "increment complete count", Err: err}
	}
	return checkUpdated(res, "increment complete count")
}

func checkUpdated(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if n == 0 {
		return &PersistenceError{Op: op, Err: ErrNotFound}
	}
	return nil
}
