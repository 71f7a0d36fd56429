package learnflow

import "time"

// dateLayout is the ISO date format used for visit and study dates.
const dateLayout = "2006-01-02"

// AttendanceStatus describes how today's visit relates to the streak.
type AttendanceStatus int

const (
	// AttendanceFirst is the very first visit.
	AttendanceFirst AttendanceStatus = iota
	// AttendanceSame means the learner already visited today.
	AttendanceSame
	// AttendanceExtended means the visit continues a daily streak.
	AttendanceExtended
	// AttendanceReset means one or more days were skipped.
	AttendanceReset
)

func (s AttendanceStatus) String() string {
	switch s {
	case AttendanceFirst:
		return "first"
	case AttendanceSame:
		return "same"
	case AttendanceExtended:
		return "extended"
	case AttendanceReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Attendance is the outcome of checking in for the day.
type Attendance struct {
	Status AttendanceStatus
	// Streak is the consecutive-day count after this visit.
	Streak int
	// MissedDays is how many whole days were skipped before a reset.
	MissedDays int
}

// checkAttendance computes the new attendance state from the stored
// last visit and today's date. lastVisit may be empty (never visited)
// or a malformed legacy value, both of which count as a first visit.
func checkAttendance(lastVisit string, streak int, today time.Time) Attendance {
	todayStr := today.Format(dateLayout)
	if lastVisit == "" {
		return Attendance{Status: AttendanceFirst, Streak: 1}
	}

	last, err := time.Parse(dateLayout, lastVisit)
	if err != nil {
		return Attendance{Status: AttendanceFirst, Streak: 1}
	}

	if lastVisit == todayStr {
		if streak < 1 {
			streak = 1
		}
		return Attendance{Status: AttendanceSame, Streak: streak}
	}

	day, _ := time.Parse(dateLayout, todayStr)
	gap := int(day.Sub(last).Hours() / 24)
	switch {
	case gap == 1:
		return Attendance{Status: AttendanceExtended, Streak: streak + 1}
	case gap > 1:
		return Attendance{Status: AttendanceReset, Streak: 1, MissedDays: gap - 1}
	default:
		// Clock went backwards. Keep the streak rather than punishing
		// the learner for a timezone change.
		return Attendance{Status: AttendanceSame, Streak: streak}
	}
}
