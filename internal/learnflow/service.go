// Package learnflow orchestrates a learner's daily session: attendance
// check-in, level testing, mission generation, practice grading, and
// the vocabulary drill through to completion.
package learnflow

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lingoz/internal/assess"
	"github.com/abhisek/lingoz/internal/curriculum"
	"github.com/abhisek/lingoz/internal/drill"
	"github.com/abhisek/lingoz/internal/practice"
	"github.com/abhisek/lingoz/internal/store"
)

// WordSynthesizer pre-generates pronunciation audio for mission words.
type WordSynthesizer interface {
	Prebuild(ctx context.Context, texts []string) []error
}

// Service wires the learning flow's dependencies together.
type Service struct {
	users      store.UserRepo
	logs       store.StudyLogRepo
	wrongWords store.WrongWordRepo
	missions   *curriculum.Service
	grader     *practice.Grader
	assessor   *assess.Controller
	synth      WordSynthesizer
	rng        *rand.Rand
	now        func() time.Time
}

// NewService creates the flow orchestrator.
func NewService(users store.UserRepo, logs store.StudyLogRepo, wrongWords store.WrongWordRepo, missions *curriculum.Service, grader *practice.Grader, assessor *assess.Controller) *Service {
	return &Service{
		users:      users,
		logs:       logs,
		wrongWords: wrongWords,
		missions:   missions,
		grader:     grader,
		assessor:   assessor,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:        time.Now,
	}
}

// AttachSpeech enables word-audio prebuild after mission generation.
// Optional; the flow works text-only without it.
func (s *Service) AttachSpeech(synth WordSynthesizer) {
	s.synth = synth
}

// Begin loads (or creates) the learner's profile, records today's
// attendance, and returns a fresh session.
func (s *Service) Begin(ctx context.Context, userID string) (*Session, error) {
	profile, err := s.users.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	att := checkAttendance(profile.LastVisitDate, profile.Streak, s.now())
	if att.Status != AttendanceSame {
		today := s.now().Format(dateLayout)
		if err := s.users.UpdateAttendance(ctx, userID, today, att.Streak); err != nil {
			return nil, fmt.Errorf("record attendance: %w", err)
		}
		profile.LastVisitDate = today
		profile.Streak = att.Streak
	}

	return newSession(userID, profile, att), nil
}

// NeedsLevelTest reports whether the session must run a level test
// before a mission can start.
func (s *Service) NeedsLevelTest(sess *Session) bool {
	return assess.ShouldTest(sess.Profile)
}

// EvaluateLevel classifies a level-test transcript and commits the
// result. The session's profile is updated in place on success.
func (s *Service) EvaluateLevel(ctx context.Context, sess *Session, transcript string) (assess.Level, error) {
	level, err := s.assessor.Evaluate(ctx, transcript)
	if err != nil {
		return "", err
	}
	if err := s.assessor.CommitLevel(ctx, sess.UserID, level); err != nil {
		return "", err
	}
	sess.Profile.CurrentLevel = string(level)
	sess.Profile.LastTestCount = sess.Profile.TotalCompleteCount
	return level, nil
}

// StartMission generates (or fetches the cached) daily mission for the
// session's level and installs it with a fresh practice scorecard.
func (s *Service) StartMission(ctx context.Context, sess *Session) error {
	level, err := assess.ParseLevel(sess.Profile.CurrentLevel)
	if err != nil {
		return fmt.Errorf("start mission: no committed level: %w", err)
	}

	mission, err := s.missions.Generate(ctx, level)
	if err != nil {
		return err
	}
	sess.Mission = mission
	sess.Practice = practice.NewResults()
	sess.Drill = nil

	// Warm the pronunciation cache in the background. Synthesis
	// failures are silent; the learn view stays text-only.
	if s.synth != nil {
		words := make([]string, 0, len(mission.Words))
		for _, w := range mission.Words {
			words = append(words, w.Term)
		}
		go func() {
			_ = s.synth.Prebuild(context.Background(), words)
		}()
	}
	return nil
}

// GradePractice grades the learner's answer to one practice prompt and
// records it on the session scorecard.
func (s *Service) GradePractice(ctx context.Context, sess *Session, promptIdx int, answer string) (practice.Result, error) {
	if sess.Mission == nil || promptIdx < 0 || promptIdx >= len(sess.Mission.Prompts) {
		return practice.Result{}, fmt.Errorf("grade practice: no prompt %d", promptIdx)
	}
	res := s.grader.Grade(ctx, sess.Mission.Prompts[promptIdx], answer)
	sess.Practice.Record(promptIdx, res)
	return res, nil
}

// StartDrill builds the drill engine over the session's mission words.
// Misses flow into the wrong-word store keyed by the session's user.
func (s *Service) StartDrill(sess *Session) (*drill.Engine, error) {
	if sess.Mission == nil {
		return nil, fmt.Errorf("start drill: no active mission")
	}
	rec := &userMissRecorder{repo: s.wrongWords, userID: sess.UserID}
	sess.Drill = drill.NewEngine(sess.Mission, s.rng, rec)
	return sess.Drill, nil
}

// CompleteDrill commits a finished drill: bumps the completion count,
// appends the study log, and resets the session for a new day. The
// writes are required; on failure the session is left intact so the
// learner can retry.
func (s *Service) CompleteDrill(ctx context.Context, sess *Session) error {
	if sess.Drill == nil || sess.Drill.Session().Phase != drill.PhaseComplete {
		return fmt.Errorf("complete drill: drill not finished")
	}

	if err := s.users.IncrementCompleteCount(ctx, sess.UserID); err != nil {
		return fmt.Errorf("commit completion: %w", err)
	}
	sess.Profile.TotalCompleteCount++

	log := store.StudyLog{
		UserID:      sess.UserID,
		SessionID:   sess.ID,
		StudyDate:   s.now().Format(dateLayout),
		CompletedAt: s.now(),
	}
	if err := s.logs.Append(ctx, log); err != nil {
		return fmt.Errorf("append study log: %w", err)
	}

	sess.resetDay()
	return nil
}

// userMissRecorder binds a drill's miss reports to one user's
// wrong-word rows.
type userMissRecorder struct {
	repo   store.WrongWordRepo
	userID string
}

func (r *userMissRecorder) RecordMiss(ctx context.Context, term, meaning string) error {
	return r.repo.RecordMiss(ctx, r.userID, term, meaning)
}
