// Package assess decides when a learner needs a level (re)test and
// turns a spoken or typed answer into a committed proficiency level.
package assess

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lingoz/internal/llm"
	"github.com/abhisek/lingoz/internal/store"
)

// Level is a learner's proficiency band.
type Level string

const (
	LevelLow  Level = "Low"
	LevelMid  Level = "Mid"
	LevelHigh Level = "High"
)

// TestInterval is how many mission completions trigger a level recheck.
const TestInterval = 5

// MinTranscriptLen is the shortest transcript that counts as a usable
// answer. Anything shorter means the recording caught nothing and the
// learner is re-prompted instead of being scored on noise.
const MinTranscriptLen = 2

// Question is the spoken prompt for the level test.
const Question = "What do you usually do on weekends?"

// ErrNoSignal indicates the transcript was too short to judge.
var ErrNoSignal = errors.New("answer too short to evaluate")

// ParseLevel validates a level label from the classifier or the store.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.TrimSpace(s)); l {
	case LevelLow, LevelMid, LevelHigh:
		return l, nil
	default:
		return "", fmt.Errorf("unknown level %q", s)
	}
}

// ShouldTest reports whether the learner must take a level test before
// starting a mission: never tested, or TestInterval completions since
// the last test.
func ShouldTest(p *store.UserProfile) bool {
	if p.CurrentLevel == "" {
		return true
	}
	return p.TotalCompleteCount-p.LastTestCount >= TestInterval
}

const classifierPrompt = `You are grading a short spoken English answer from a Korean middle-school student. Judge their proficiency from the answer alone and reply with exactly one word: Low, Mid, or High. No punctuation, no explanation.`

// Controller runs the level test against the model and commits results.
type Controller struct {
	provider llm.Provider
	users    store.UserRepo
}

// NewController creates an assessment controller.
func NewController(provider llm.Provider, users store.UserRepo) *Controller {
	return &Controller{provider: provider, users: users}
}

// Evaluate classifies a transcript into a Level. Transcripts shorter
// than MinTranscriptLen return ErrNoSignal and nothing is submitted.
func (c *Controller) Evaluate(ctx context.Context, transcript string) (Level, error) {
	transcript = strings.TrimSpace(transcript)
	if len([]rune(transcript)) < MinTranscriptLen {
		return "", ErrNoSignal
	}

	ctx = llm.WithPurpose(ctx, "level-test")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System: classifierPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: transcript},
		},
		MaxTokens: 8,
	})
	if err != nil {
		return "", fmt.Errorf("level classification: %w", err)
	}

	level, err := ParseLevel(firstWord(resp.Text()))
	if err != nil {
		return "", fmt.Errorf("level classification: %w", err)
	}
	return level, nil
}

// CommitLevel writes the new level and snapshots the completion count
// so the next recheck is measured from this point. The two fields are
// written together or not at all; a store failure propagates.
func (c *Controller) CommitLevel(ctx context.Context, userID string, level Level) error {
	p, err := c.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if err := c.users.CommitLevel(ctx, userID, string(level), p.TotalCompleteCount); err != nil {
		return fmt.Errorf("commit level: %w", err)
	}
	return nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!")
}
