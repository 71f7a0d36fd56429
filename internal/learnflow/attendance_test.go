package learnflow

import (
	"testing"
	"time"
)

func TestCheckAttendance(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastVisit  string
		streak     int
		wantStatus AttendanceStatus
		wantStreak int
		wantMissed int
	}{
		{"first visit", "", 0, AttendanceFirst, 1, 0},
		{"malformed date", "not-a-date", 4, AttendanceFirst, 1, 0},
		{"same day", "2025-03-10", 3, AttendanceSame, 3, 0},
		{"same day zero streak", "2025-03-10", 0, AttendanceSame, 1, 0},
		{"consecutive day", "2025-03-09", 3, AttendanceExtended, 4, 0},
		{"one day skipped", "2025-03-08", 7, AttendanceReset, 1, 1},
		{"week skipped", "2025-03-03", 30, AttendanceReset, 1, 6},
		{"future last visit", "2025-03-12", 5, AttendanceSame, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkAttendance(tt.lastVisit, tt.streak, today)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", got.Streak, tt.wantStreak)
			}
			if got.MissedDays != tt.wantMissed {
				t.Errorf("missed days = %d, want %d", got.MissedDays, tt.wantMissed)
			}
		})
	}
}
