package drill

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/abhisek/lingoz/internal/curriculum"
)

// ErrWrongPhase is returned when an action is applied in a phase that
// does not accept it.
var ErrWrongPhase = errors.New("drill: action not valid in current phase")

// MissRecorder persists a wrong answer. Failures are reported to the
// caller but never abort the drill.
type MissRecorder interface {
	RecordMiss(ctx context.Context, term, meaning string) error
}

// Action is a drill input. The engine advances by applying actions to
// its session and returning an Outcome describing what happened.
type Action interface {
	isAction()
}

// Start begins the recognition round of the current working set.
type Start struct{}

// SubmitChoice answers the active recognition item with one of the
// displayed options.
type SubmitChoice struct {
	Option string
}

// SubmitTerm answers the active production item with a typed term.
type SubmitTerm struct {
	Text string
}

func (Start) isAction()        {}
func (SubmitChoice) isAction() {}
func (SubmitTerm) isAction()   {}

// Outcome reports the effect of a single applied action.
type Outcome struct {
	// Target is the item the action answered. Zero for Start.
	Target curriculum.VocabularyItem
	// Correct reports whether the answer matched. Always true for Start.
	Correct bool
	// RoundEnded is set when the action consumed the last item of a
	// recognition or production round.
	RoundEnded bool
	// LoopEnded is set when a production round finished with misses,
	// so a new loop over the missed items is pending.
	LoopEnded bool
	// Completed is set when the drill reached its terminal phase.
	Completed bool
}

// Engine drives a drill over one mission's vocabulary.
type Engine struct {
	mission  *curriculum.Mission
	rng      *rand.Rand
	recorder MissRecorder
	session  Session
}

// NewEngine builds an engine whose first working set is the mission's
// full word list in random order.
func NewEngine(mission *curriculum.Mission, rng *rand.Rand, recorder MissRecorder) *Engine {
	e := &Engine{
		mission:  mission,
		rng:      rng,
		recorder: recorder,
	}
	e.session.LoopCount = 1
	e.session.clearMissed()
	e.enterReady(mission.Words)
	return e
}

// Session exposes the engine's state for rendering. Callers must not
// mutate it.
func (e *Engine) Session() *Session {
	return &e.session
}

// Choices returns the frozen option set for the active recognition
// item, drawing it on first call. The same slice content is returned
// until the item is answered.
func (e *Engine) Choices() []string {
	s := &e.session
	target, ok := s.Target()
	if !ok || s.Phase != PhaseRecognition {
		return nil
	}
	if s.frozenFor != target.Term || s.frozenChoices == nil {
		s.frozenChoices = drawChoices(e.rng, e.mission.Words, target)
		s.frozenFor = target.Term
	}
	return s.frozenChoices
}

// Apply advances the drill with one action.
func (e *Engine) Apply(ctx context.Context, a Action) (Outcome, error) {
	switch act := a.(type) {
	case Start:
		return e.applyStart()
	case SubmitChoice:
		return e.applySubmitChoice(ctx, act)
	case SubmitTerm:
		return e.applySubmitTerm(ctx, act)
	default:
		return Outcome{}, fmt.Errorf("drill: unknown action %T", a)
	}
}

func (e *Engine) applyStart() (Outcome, error) {
	s := &e.session
	if s.Phase != PhaseReady {
		return Outcome{}, fmt.Errorf("%w: start in %s", ErrWrongPhase, s.Phase)
	}
	s.Phase = PhaseRecognition
	s.Cursor = 0
	return Outcome{Correct: true}, nil
}

func (e *Engine) applySubmitChoice(ctx context.Context, act SubmitChoice) (Outcome, error) {
	s := &e.session
	if s.Phase != PhaseRecognition {
		return Outcome{}, fmt.Errorf("%w: choice in %s", ErrWrongPhase, s.Phase)
	}
	target, ok := s.Target()
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no active item", ErrWrongPhase)
	}
	out := Outcome{Target: target, Correct: act.Option == target.Meaning}
	if !out.Correct {
		e.recordMiss(ctx, target)
	}
	s.frozenChoices = nil
	s.frozenFor = ""
	s.Cursor++
	if s.Cursor >= len(s.WorkingSet) {
		out.RoundEnded = true
		e.enterProduction()
	}
	return out, nil
}

func (e *Engine) applySubmitTerm(ctx context.Context, act SubmitTerm) (Outcome, error) {
	s := &e.session
	if s.Phase != PhaseProduction {
		return Outcome{}, fmt.Errorf("%w: term in %s", ErrWrongPhase, s.Phase)
	}
	target, ok := s.Target()
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no active item", ErrWrongPhase)
	}
	answer := strings.TrimSpace(act.Text)
	out := Outcome{Target: target, Correct: strings.EqualFold(answer, target.Term)}
	if !out.Correct {
		e.recordMiss(ctx, target)
	}
	s.Cursor++
	if s.Cursor >= len(s.WorkingSet) {
		out.RoundEnded = true
		if s.MissedCount() == 0 {
			s.Phase = PhaseComplete
			out.Completed = true
		} else {
			out.LoopEnded = true
			next := s.Missed()
			s.LoopCount++
			s.clearMissed()
			e.enterReady(next)
		}
	}
	return out, nil
}

// enterReady installs a freshly shuffled copy of items as the working
// set and parks the session in the ready phase.
func (e *Engine) enterReady(items []curriculum.VocabularyItem) {
	s := &e.session
	ws := make([]curriculum.VocabularyItem, len(items))
	copy(ws, items)
	e.rng.Shuffle(len(ws), func(i, j int) {
		ws[i], ws[j] = ws[j], ws[i]
	})
	s.WorkingSet = ws
	s.Cursor = 0
	s.Phase = PhaseReady
}

// enterProduction reshuffles the working set so the production round
// presents the same items in a fresh order.
func (e *Engine) enterProduction() {
	s := &e.session
	e.rng.Shuffle(len(s.WorkingSet), func(i, j int) {
		s.WorkingSet[i], s.WorkingSet[j] = s.WorkingSet[j], s.WorkingSet[i]
	})
	s.Cursor = 0
	s.Phase = PhaseProduction
}

func (e *Engine) recordMiss(ctx context.Context, item curriculum.VocabularyItem) {
	e.session.addMissed(item)
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordMiss(ctx, item.Term, item.Meaning); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record missed word %q: %v\n", item.Term, err)
	}
}
