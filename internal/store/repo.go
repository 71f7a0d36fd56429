package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// PersistenceError wraps a failed store write. Profile and level writes
// treat it as fatal to the current operation; wrong-word logging treats
// it as droppable telemetry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// UserProfile is one learner's persisted record.
type UserProfile struct {
	UserID             string
	CurrentLevel       string // "", "Low", "Mid", "High"; empty = never tested
	TotalCompleteCount int
	LastTestCount      int
	Streak             int
	LastVisitDate      string // ISO date, empty = never visited
}

// UserRepo manages user profile rows.
type UserRepo interface {
	// Get returns the profile for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*UserProfile, error)

	// GetOrCreate returns the existing profile or inserts a zero one.
	GetOrCreate(ctx context.Context, userID string) (*UserProfile, error)

	// UpdateAttendance writes last_visit_date and streak together.
	UpdateAttendance(ctx context.Context, userID, visitDate string, streak int) error

	// CommitLevel writes current_level and last_test_count together;
	// the snapshot makes the next test trigger relative to this point.
	CommitLevel(ctx context.Context, userID, level string, lastTestCount int) error

	// IncrementCompleteCount adds one to total_complete_count.
	IncrementCompleteCount(ctx context.Context, userID string) error
}

// StudyLog is one completed daily mission.
type StudyLog struct {
	UserID      string
	SessionID   string
	StudyDate   string
	CompletedAt time.Time
}

// StudyLogRepo appends mission completion records.
type StudyLogRepo interface {
	Append(ctx context.Context, log StudyLog) error

	// CountForUser returns the number of logs for a user.
	CountForUser(ctx context.Context, userID string) (int, error)
}

// WrongWord is a vocabulary item a user has missed, with a running count.
type WrongWord struct {
	UserID     string
	Word       string
	Meaning    string
	WrongCount int
}

// WrongWordRepo tracks missed vocabulary across sessions.
type WrongWordRepo interface {
	// RecordMiss upserts: insert with count 1, or increment the
	// existing row's count.
	RecordMiss(ctx context.Context, userID, word, meaning string) error

	// TopMissed returns the user's most-missed words, highest count first.
	TopMissed(ctx context.Context, userID string, limit int) ([]WrongWord, error)
}

// LLMRequestEventData captures one model API call for the request log.
type LLMRequestEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored model request row.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMEventRepo records model API traffic.
type LLMEventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns the newest events first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}
