package learnflow

import (
	"github.com/google/uuid"

	"github.com/abhisek/lingoz/internal/curriculum"
	"github.com/abhisek/lingoz/internal/drill"
	"github.com/abhisek/lingoz/internal/practice"
	"github.com/abhisek/lingoz/internal/store"
)

// Session is one learner's in-memory state for a run of the app. It
// carries everything downstream screens need so they never reach back
// into storage mid-flow.
type Session struct {
	ID         string
	UserID     string
	Profile    *store.UserProfile
	Attendance Attendance

	// Mission, Practice and Drill are populated as the learner moves
	// through the day's flow and cleared again on completion.
	Mission  *curriculum.Mission
	Practice *practice.Results
	Drill    *drill.Engine
}

func newSession(userID string, profile *store.UserProfile, att Attendance) *Session {
	return &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Profile:    profile,
		Attendance: att,
	}
}

// resetDay clears the per-mission state so a fresh mission can start.
func (s *Session) resetDay() {
	s.Mission = nil
	s.Practice = nil
	s.Drill = nil
}
