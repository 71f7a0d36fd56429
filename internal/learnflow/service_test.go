package learnflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/lingoz/internal/assess"
	"github.com/abhisek/lingoz/internal/curriculum"
	"github.com/abhisek/lingoz/internal/drill"
	"github.com/abhisek/lingoz/internal/llm"
	"github.com/abhisek/lingoz/internal/practice"
	"github.com/abhisek/lingoz/internal/store"
)

// In-memory repo fakes.

type fakeUserRepo struct {
	profiles     map[string]*store.UserProfile
	incrementErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: make(map[string]*store.UserProfile)}
}

func (r *fakeUserRepo) Get(_ context.Context, userID string) (*store.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeUserRepo) GetOrCreate(ctx context.Context, userID string) (*store.UserProfile, error) {
	if p, err := r.Get(ctx, userID); err == nil {
		return p, nil
	}
	r.profiles[userID] = &store.UserProfile{UserID: userID}
	cp := *r.profiles[userID]
	return &cp, nil
}

func (r *fakeUserRepo) UpdateAttendance(_ context.Context, userID, visitDate string, streak int) error {
	p, ok := r.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	p.LastVisitDate = visitDate
	p.Streak = streak
	return nil
}

func (r *fakeUserRepo) CommitLevel(_ context.Context, userID, level string, lastTestCount int) error {
	p, ok := r.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	p.CurrentLevel = level
	p.LastTestCount = lastTestCount
	return nil
}

func (r *fakeUserRepo) IncrementCompleteCount(_ context.Context, userID string) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	p.TotalCompleteCount++
	return nil
}

type fakeStudyLogRepo struct {
	logs []store.StudyLog
}

func (r *fakeStudyLogRepo) Append(_ context.Context, log store.StudyLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeStudyLogRepo) CountForUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, l := range r.logs {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeWrongWordRepo struct {
	counts map[string]int
}

func (r *fakeWrongWordRepo) RecordMiss(_ context.Context, userID, word, _ string) error {
	if r.counts == nil {
		r.counts = make(map[string]int)
	}
	r.counts[userID+"/"+word]++
	return nil
}

func (r *fakeWrongWordRepo) TopMissed(_ context.Context, _ string, _ int) ([]store.WrongWord, error) {
	return nil, nil
}

// missionJSON marshals a complete, valid mission payload the way the
// model would return it.
func missionJSON(t *testing.T) json.RawMessage {
	t.Helper()
	m := curriculum.Mission{
		Topic: "hobbies",
		Grammar: curriculum.GrammarCard{
			Title:       "like + -ing",
			Description: "Talking about hobbies.",
			Rule:        "like + verb-ing",
			Example:     "I like playing soccer.",
		},
	}
	for i := 0; i < curriculum.MissionWords; i++ {
		m.Words = append(m.Words, curriculum.VocabularyItem{
			Term:    fmt.Sprintf("hobby%02d", i),
			Meaning: fmt.Sprintf("취미%02d", i),
		})
		m.Prompts = append(m.Prompts, curriculum.PracticePrompt{
			PromptText:     fmt.Sprintf("문장 %02d", i),
			TargetSentence: fmt.Sprintf("Sentence number %02d.", i),
			HintStructure:  "subject + verb",
			HintGrammar:    "present simple",
		})
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal mission: %v", err)
	}
	return raw
}

type env struct {
	svc   *Service
	users *fakeUserRepo
	logs  *fakeStudyLogRepo
	wrong *fakeWrongWordRepo
	mock  *llm.MockProvider
}

func newEnv(t *testing.T, responses ...llm.MockResponse) *env {
	t.Helper()
	users := newFakeUserRepo()
	logs := &fakeStudyLogRepo{}
	wrong := &fakeWrongWordRepo{}
	mock := llm.NewMockProvider(responses...)

	svc := NewService(
		users, logs, wrong,
		curriculum.NewService(mock, curriculum.DefaultConfig()),
		practice.NewGrader(mock),
		assess.NewController(mock, users),
	)
	svc.rng = rand.New(rand.NewPCG(1, 2))
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	return &env{svc: svc, users: users, logs: logs, wrong: wrong, mock: mock}
}

func TestService_BeginCreatesProfileAndAttendance(t *testing.T) {
	e := newEnv(t)

	sess, err := e.svc.Begin(context.Background(), "mina")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if sess.ID == "" {
		t.Error("session has no ID")
	}
	if sess.Attendance.Status != AttendanceFirst {
		t.Errorf("attendance = %s, want first", sess.Attendance.Status)
	}
	if sess.Profile.Streak != 1 {
		t.Errorf("streak = %d, want 1", sess.Profile.Streak)
	}
	if got := e.users.profiles["mina"].LastVisitDate; got != "2025-03-10" {
		t.Errorf("stored visit date = %q", got)
	}
}

func TestService_BeginSameDaySkipsWrite(t *testing.T) {
	e := newEnv(t)
	e.users.profiles["mina"] = &store.UserProfile{
		UserID:        "mina",
		Streak:        4,
		LastVisitDate: "2025-03-10",
	}

	sess, err := e.svc.Begin(context.Background(), "mina")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if sess.Attendance.Status != AttendanceSame {
		t.Errorf("attendance = %s, want same", sess.Attendance.Status)
	}
	if sess.Profile.Streak != 4 {
		t.Errorf("streak = %d, want 4", sess.Profile.Streak)
	}
}

func TestService_NeedsLevelTest(t *testing.T) {
	e := newEnv(t)

	sess, _ := e.svc.Begin(context.Background(), "mina")
	if !e.svc.NeedsLevelTest(sess) {
		t.Error("new user should need a level test")
	}

	sess.Profile.CurrentLevel = "Mid"
	sess.Profile.TotalCompleteCount = 3
	sess.Profile.LastTestCount = 0
	if e.svc.NeedsLevelTest(sess) {
		t.Error("3 completions since test should not retrigger")
	}

	sess.Profile.TotalCompleteCount = 5
	if !e.svc.NeedsLevelTest(sess) {
		t.Error("5 completions since test should retrigger")
	}
}

func TestService_EvaluateLevelCommits(t *testing.T) {
	e := newEnv(t, llm.MockResponse{Content: json.RawMessage(`"Mid"`)})

	sess, _ := e.svc.Begin(context.Background(), "mina")
	level, err := e.svc.EvaluateLevel(context.Background(), sess, "I usually play soccer with my friends.")
	if err != nil {
		t.Fatalf("EvaluateLevel: %v", err)
	}
	if level != assess.LevelMid {
		t.Errorf("level = %s, want Mid", level)
	}
	if sess.Profile.CurrentLevel != "Mid" {
		t.Errorf("session level = %q, want Mid", sess.Profile.CurrentLevel)
	}
	if got := e.users.profiles["mina"].CurrentLevel; got != "Mid" {
		t.Errorf("stored level = %q, want Mid", got)
	}
}

func TestService_EvaluateLevelRejectsShortTranscript(t *testing.T) {
	e := newEnv(t)

	sess, _ := e.svc.Begin(context.Background(), "mina")
	_, err := e.svc.EvaluateLevel(context.Background(), sess, " a ")
	if !errors.Is(err, assess.ErrNoSignal) {
		t.Fatalf("err = %v, want ErrNoSignal", err)
	}
	if e.mock.CallCount() != 0 {
		t.Errorf("model called %d times for unusable transcript", e.mock.CallCount())
	}
}

func TestService_StartMissionRequiresLevel(t *testing.T) {
	e := newEnv(t)

	sess, _ := e.svc.Begin(context.Background(), "mina")
	if err := e.svc.StartMission(context.Background(), sess); err == nil {
		t.Fatal("StartMission without a level should fail")
	}
}

func TestService_FullDayFlow(t *testing.T) {
	e := newEnv(t,
		llm.MockResponse{Content: json.RawMessage(`"Low"`)},
		llm.MockResponse{Content: missionJSON(t)},
	)

	ctx := context.Background()
	sess, err := e.svc.Begin(ctx, "mina")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := e.svc.EvaluateLevel(ctx, sess, "I watch movies at home with my family."); err != nil {
		t.Fatalf("EvaluateLevel: %v", err)
	}
	if err := e.svc.StartMission(ctx, sess); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	if len(sess.Mission.Words) != curriculum.MissionWords {
		t.Fatalf("mission words = %d", len(sess.Mission.Words))
	}

	// Practice: an exact match passes without a model call.
	callsBefore := e.mock.CallCount()
	res, err := e.svc.GradePractice(ctx, sess, 0, sess.Mission.Prompts[0].TargetSentence)
	if err != nil {
		t.Fatalf("GradePractice: %v", err)
	}
	if !res.Passed {
		t.Error("exact answer did not pass")
	}
	if e.mock.CallCount() != callsBefore {
		t.Error("exact answer reached the model")
	}
	if sess.Practice.PassedCount() != 1 {
		t.Errorf("passed count = %d, want 1", sess.Practice.PassedCount())
	}

	engine, err := e.svc.StartDrill(sess)
	if err != nil {
		t.Fatalf("StartDrill: %v", err)
	}
	runPerfectDrill(t, engine)

	if err := e.svc.CompleteDrill(ctx, sess); err != nil {
		t.Fatalf("CompleteDrill: %v", err)
	}
	if got := e.users.profiles["mina"].TotalCompleteCount; got != 1 {
		t.Errorf("complete count = %d, want 1", got)
	}
	if len(e.logs.logs) != 1 {
		t.Fatalf("study logs = %d, want 1", len(e.logs.logs))
	}
	if e.logs.logs[0].SessionID != sess.ID {
		t.Errorf("study log session = %q, want %q", e.logs.logs[0].SessionID, sess.ID)
	}
	if sess.Mission != nil || sess.Drill != nil || sess.Practice != nil {
		t.Error("session not reset after completion")
	}
}

func TestService_DrillMissesReachWrongWordStore(t *testing.T) {
	e := newEnv(t, llm.MockResponse{Content: missionJSON(t)})
	sess, _ := e.svc.Begin(context.Background(), "mina")
	e.users.profiles["mina"].CurrentLevel = "Low"
	sess.Profile.CurrentLevel = "Low"

	ctx := context.Background()
	if err := e.svc.StartMission(ctx, sess); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	engine, err := e.svc.StartDrill(sess)
	if err != nil {
		t.Fatalf("StartDrill: %v", err)
	}

	if _, err := engine.Apply(ctx, drill.Start{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	target, _ := engine.Session().Target()
	if _, err := engine.Apply(ctx, drill.SubmitChoice{Option: "wrong meaning"}); err != nil {
		t.Fatalf("SubmitChoice: %v", err)
	}
	if got := e.wrong.counts["mina/"+target.Term]; got != 1 {
		t.Errorf("wrong-word count = %d, want 1", got)
	}
}

func TestService_CompleteDrillRequiresFinish(t *testing.T) {
	e := newEnv(t, llm.MockResponse{Content: missionJSON(t)})
	sess, _ := e.svc.Begin(context.Background(), "mina")
	e.users.profiles["mina"].CurrentLevel = "High"
	sess.Profile.CurrentLevel = "High"

	ctx := context.Background()
	if err := e.svc.StartMission(ctx, sess); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	if _, err := e.svc.StartDrill(sess); err != nil {
		t.Fatalf("StartDrill: %v", err)
	}

	if err := e.svc.CompleteDrill(ctx, sess); err == nil {
		t.Fatal("CompleteDrill on unfinished drill should fail")
	}
	if len(e.logs.logs) != 0 {
		t.Errorf("study logs = %d, want 0", len(e.logs.logs))
	}
}

func TestService_CompleteDrillCommitFailureKeepsSession(t *testing.T) {
	e := newEnv(t, llm.MockResponse{Content: missionJSON(t)})
	sess, _ := e.svc.Begin(context.Background(), "mina")
	e.users.profiles["mina"].CurrentLevel = "Low"
	sess.Profile.CurrentLevel = "Low"

	ctx := context.Background()
	if err := e.svc.StartMission(ctx, sess); err != nil {
		t.Fatalf("StartMission: %v", err)
	}
	engine, _ := e.svc.StartDrill(sess)
	runPerfectDrill(t, engine)

	e.users.incrementErr = errors.New("disk full")
	if err := e.svc.CompleteDrill(ctx, sess); err == nil {
		t.Fatal("CompleteDrill should surface the commit failure")
	}
	if sess.Drill == nil {
		t.Error("session reset despite failed commit")
	}

	e.users.incrementErr = nil
	if err := e.svc.CompleteDrill(ctx, sess); err != nil {
		t.Fatalf("retry after commit failure: %v", err)
	}
}

// runPerfectDrill answers every item correctly through completion.
func runPerfectDrill(t *testing.T, engine *drill.Engine) {
	t.Helper()
	ctx := context.Background()
	if _, err := engine.Apply(ctx, drill.Start{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for engine.Session().Phase == drill.PhaseRecognition {
		target, _ := engine.Session().Target()
		if _, err := engine.Apply(ctx, drill.SubmitChoice{Option: target.Meaning}); err != nil {
			t.Fatalf("SubmitChoice: %v", err)
		}
	}
	for engine.Session().Phase == drill.PhaseProduction {
		target, _ := engine.Session().Target()
		if _, err := engine.Apply(ctx, drill.SubmitTerm{Text: target.Term}); err != nil {
			t.Fatalf("SubmitTerm: %v", err)
		}
	}
	if engine.Session().Phase != drill.PhaseComplete {
		t.Fatalf("drill phase = %s, want complete", engine.Session().Phase)
	}
}

type fakeSynth struct {
	got chan []string
}

func (f *fakeSynth) Prebuild(_ context.Context, texts []string) []error {
	f.got <- texts
	return nil
}

func TestService_StartMissionPrebuildsWordAudio(t *testing.T) {
	e := newEnv(t,
		llm.MockResponse{Content: json.RawMessage(`"Low"`)},
		llm.MockResponse{Content: missionJSON(t)},
	)
	synth := &fakeSynth{got: make(chan []string, 1)}
	e.svc.AttachSpeech(synth)

	ctx := context.Background()
	sess, _ := e.svc.Begin(ctx, "mina")
	if _, err := e.svc.EvaluateLevel(ctx, sess, "I watch movies at home."); err != nil {
		t.Fatalf("EvaluateLevel: %v", err)
	}
	if err := e.svc.StartMission(ctx, sess); err != nil {
		t.Fatalf("StartMission: %v", err)
	}

	select {
	case words := <-synth.got:
		if len(words) != len(sess.Mission.Words) {
			t.Errorf("prebuilt %d words, want %d", len(words), len(sess.Mission.Words))
		}
	case <-time.After(time.Second):
		t.Fatal("prebuild never ran")
	}
}
