// Package drill implements the quiz drill engine: a state machine that
// runs recognition (multiple-choice) and production (free-recall)
// rounds over a working set of vocabulary, requeueing missed items
// into further loops until a loop finishes with zero misses.
package drill

import "github.com/abhisek/lingoz/internal/curriculum"

// Phase is the drill state machine phase.
type Phase int

const (
	// PhaseReady means a working set is built and the drill waits for
	// an explicit start.
	PhaseReady Phase = iota
	// PhaseRecognition is the multiple-choice round.
	PhaseRecognition
	// PhaseProduction is the free-recall round.
	PhaseProduction
	// PhaseComplete is terminal: a production round ended with an
	// empty missed set.
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRecognition:
		return "recognition"
	case PhaseProduction:
		return "production"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Session is the drill's mutable state. It is owned and mutated
// exclusively by an Engine; everything else reads it.
type Session struct {
	Phase      Phase
	WorkingSet []curriculum.VocabularyItem
	Cursor     int
	LoopCount  int

	// missed accumulates items answered wrong in either round of the
	// current loop, deduplicated by term. It seeds the next loop's
	// working set.
	missed    []curriculum.VocabularyItem
	missedSet map[string]bool

	// frozenChoices is the option set for the active recognition item.
	// Frozen on first draw and reused verbatim until the item is
	// answered, so a re-render can never change the displayed options.
	frozenChoices []string
	frozenFor     string
}

// Target returns the item the cursor points at, or false when the
// session is not inside a round.
func (s *Session) Target() (curriculum.VocabularyItem, bool) {
	if s.Phase != PhaseRecognition && s.Phase != PhaseProduction {
		return curriculum.VocabularyItem{}, false
	}
	if s.Cursor < 0 || s.Cursor >= len(s.WorkingSet) {
		return curriculum.VocabularyItem{}, false
	}
	return s.WorkingSet[s.Cursor], true
}

// MissedCount returns how many distinct items have been missed in the
// current loop.
func (s *Session) MissedCount() int {
	return len(s.missed)
}

// Missed returns a copy of the current loop's missed items in the
// order they were first missed.
func (s *Session) Missed() []curriculum.VocabularyItem {
	out := make([]curriculum.VocabularyItem, len(s.missed))
	copy(out, s.missed)
	return out
}

// addMissed records a miss, idempotently per loop.
func (s *Session) addMissed(item curriculum.VocabularyItem) {
	if s.missedSet[item.Term] {
		return
	}
	s.missedSet[item.Term] = true
	s.missed = append(s.missed, item)
}

// clearMissed resets the missed set at the start of a loop.
func (s *Session) clearMissed() {
	s.missed = nil
	s.missedSet = make(map[string]bool)
}
