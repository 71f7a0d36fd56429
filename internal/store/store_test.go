package store

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_MigratesIdempotently(t *testing.T) {
	s := openTestStore(t)

	// A second migration over the same handle is a no-op.
	if err := migrate(s.DB()); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
}

func TestUserRepo_GetOrCreate(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	if _, err := users.Get(ctx, "mina"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get before create: err = %v, want ErrNotFound", err)
	}

	p, err := users.GetOrCreate(ctx, "mina")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if p.UserID != "mina" || p.CurrentLevel != "" || p.Streak != 0 {
		t.Errorf("fresh profile = %+v", p)
	}

	again, err := users.GetOrCreate(ctx, "mina")
	if err != nil {
		t.Fatalf("GetOrCreate (existing): %v", err)
	}
	if again.UserID != "mina" {
		t.Errorf("existing profile = %+v", again)
	}
}

func TestUserRepo_UpdateAttendance(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, "mina"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := users.UpdateAttendance(ctx, "mina", "2025-03-10", 4); err != nil {
		t.Fatalf("UpdateAttendance: %v", err)
	}

	p, err := users.Get(ctx, "mina")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.LastVisitDate != "2025-03-10" || p.Streak != 4 {
		t.Errorf("profile = %+v", p)
	}

	err = users.UpdateAttendance(ctx, "ghost", "2025-03-10", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: err = %v, want ErrNotFound", err)
	}
}

func TestUserRepo_CommitLevelWritesBothFields(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	if _, err := users.GetOrCreate(ctx, "mina"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := users.IncrementCompleteCount(ctx, "mina"); err != nil {
			t.Fatalf("IncrementCompleteCount: %v", err)
		}
	}
	if err := users.CommitLevel(ctx, "mina", "Mid", 3); err != nil {
		t.Fatalf("CommitLevel: %v", err)
	}

	p, err := users.Get(ctx, "mina")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.CurrentLevel != "Mid" {
		t.Errorf("level = %q, want Mid", p.CurrentLevel)
	}
	if p.LastTestCount != 3 || p.TotalCompleteCount != 3 {
		t.Errorf("counts = last_test %d, total %d", p.LastTestCount, p.TotalCompleteCount)
	}
}

func TestStudyLogRepo_AppendAndCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Users().GetOrCreate(ctx, "mina"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	logs := s.StudyLogs()
	for i := 0; i < 2; i++ {
		err := logs.Append(ctx, StudyLog{
			UserID:    "mina",
			SessionID: "session-1",
			StudyDate: "2025-03-10",
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	n, err := logs.CountForUser(ctx, "mina")
	if err != nil {
		t.Fatalf("CountForUser: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	n, err = logs.CountForUser(ctx, "other")
	if err != nil {
		t.Fatalf("CountForUser (other): %v", err)
	}
	if n != 0 {
		t.Errorf("count for other user = %d, want 0", n)
	}
}

func TestWrongWordRepo_UpsertIncrements(t *testing.T) {
	s := openTestStore(t)
	words := s.WrongWords()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := words.RecordMiss(ctx, "mina", "library", "도서관"); err != nil {
			t.Fatalf("RecordMiss: %v", err)
		}
	}
	if err := words.RecordMiss(ctx, "mina", "weekend", "주말"); err != nil {
		t.Fatalf("RecordMiss: %v", err)
	}
	// Another user's misses are separate rows.
	if err := words.RecordMiss(ctx, "juno", "library", "도서관"); err != nil {
		t.Fatalf("RecordMiss: %v", err)
	}

	top, err := words.TopMissed(ctx, "mina", 10)
	if err != nil {
		t.Fatalf("TopMissed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("top missed = %d rows, want 2", len(top))
	}
	if top[0].Word != "library" || top[0].WrongCount != 3 {
		t.Errorf("top row = %+v", top[0])
	}
	if top[1].Word != "weekend" || top[1].WrongCount != 1 {
		t.Errorf("second row = %+v", top[1])
	}
}

func TestWrongWordRepo_TopMissedLimit(t *testing.T) {
	s := openTestStore(t)
	words := s.WrongWords()
	ctx := context.Background()

	for _, w := range []string{"a", "b", "c", "d"} {
		if err := words.RecordMiss(ctx, "mina", w, "뜻"); err != nil {
			t.Fatalf("RecordMiss: %v", err)
		}
	}

	top, err := words.TopMissed(ctx, "mina", 2)
	if err != nil {
		t.Fatalf("TopMissed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("top missed = %d rows, want 2", len(top))
	}
}

func TestLLMEventRepo_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	events := s.LLMEvents()
	ctx := context.Background()

	err := events.AppendLLMRequest(ctx, LLMRequestEventData{
		Model:        "gpt-4o-mini",
		Purpose:      "mission-gen",
		InputTokens:  900,
		OutputTokens: 2100,
		LatencyMs:    1430,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}
	err = events.AppendLLMRequest(ctx, LLMRequestEventData{
		Model:        "gemini-flash",
		Purpose:      "level-test",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}

	recent, err := events.RecentLLMRequests(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLLMRequests: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d rows, want 2", len(recent))
	}
	// Newest first.
	if recent[0].Purpose != "level-test" {
		t.Errorf("first row purpose = %q, want level-test", recent[0].Purpose)
	}
	if recent[0].Success {
		t.Error("failed request stored as success")
	}
	if recent[1].Model != "gpt-4o-mini" || recent[1].InputTokens != 900 {
		t.Errorf("second row = %+v", recent[1])
	}
}

func TestStore_ResetUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Users().GetOrCreate(ctx, "mina"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if err := s.WrongWords().RecordMiss(ctx, "mina", "library", "도서관"); err != nil {
		t.Fatalf("RecordMiss: %v", err)
	}
	if _, err := s.Users().GetOrCreate(ctx, "juno"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if err := s.ResetUser(ctx, "mina"); err != nil {
		t.Fatalf("ResetUser: %v", err)
	}

	if _, err := s.Users().Get(ctx, "mina"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after reset: err = %v, want ErrNotFound", err)
	}
	words, err := s.WrongWords().TopMissed(ctx, "mina", 10)
	if err != nil {
		t.Fatalf("TopMissed: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("wrong words after reset = %d, want 0", len(words))
	}

	// Other learners are untouched.
	if _, err := s.Users().Get(ctx, "juno"); err != nil {
		t.Errorf("Get other user: %v", err)
	}
}
