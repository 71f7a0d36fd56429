package store

import (
	"context"
	"database/sql"
	"time"
)

type llmEventRepo struct {
	db *sql.DB
}

func (r *llmEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(timestamp, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage)
	if err != nil {
		return &PersistenceError{Op: "append llm request", Err: err}
	}
	return nil
}

func (r *llmEventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, error_message
		FROM llm_requests
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "query llm requests", Err: err}
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var e LLMRequestEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage); err != nil {
			return nil, &PersistenceError{Op: "scan llm request", Err: err}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
