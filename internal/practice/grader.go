// Package practice grades free sentence production against a prompt's
// canonical answer: an exact-match fast path, then a semantic judgment
// from the model.
package practice

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingoz/internal/curriculum"
	"github.com/abhisek/lingoz/internal/llm"
)

// Result is a grading verdict. Feedback is empty on a pass and holds
// the model's Korean feedback (or a generic fallback) on a fail.
type Result struct {
	Passed   bool
	Feedback string
}

// genericFailFeedback is used when the grading call itself fails.
// Grading fails closed: a provider fault is never reported as a pass.
const genericFailFeedback = "채점 중 문제가 발생했어요. 정답 문장과 비교해서 다시 시도해보세요."

const graderPrompt = `You are grading a Korean middle-school student's English sentence against a target sentence. If the student's sentence means the same thing and is grammatically acceptable, reply with exactly "PASS". Otherwise reply with "FAIL " followed by one or two sentences of specific feedback in Korean.`

// Grader compares answers to target sentences.
type Grader struct {
	provider llm.Provider
}

// NewGrader creates a practice grader.
func NewGrader(provider llm.Provider) *Grader {
	return &Grader{provider: provider}
}

// Grade evaluates a user's answer for one prompt. It never returns an
// error: provider failures grade as FAIL with generic feedback.
func (g *Grader) Grade(ctx context.Context, prompt curriculum.PracticePrompt, answer string) Result {
	if Normalize(answer) == Normalize(prompt.TargetSentence) {
		return Result{Passed: true}
	}

	ctx = llm.WithPurpose(ctx, "practice-grade")
	resp, err := g.provider.Generate(ctx, llm.Request{
		System: graderPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Target: %s\nAnswer: %s", prompt.TargetSentence, answer)},
		},
		MaxTokens: 256,
	})
	if err != nil {
		return Result{Passed: false, Feedback: genericFailFeedback}
	}

	return parseVerdict(resp.Text())
}

// parseVerdict converts the model's marker-prefixed reply into a typed
// Result at the boundary, so nothing downstream parses marker strings.
func parseVerdict(raw string) Result {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "PASS") {
		return Result{Passed: true}
	}
	if rest, ok := strings.CutPrefix(trimmed, "FAIL"); ok {
		feedback := strings.TrimSpace(rest)
		if feedback == "" {
			feedback = genericFailFeedback
		}
		return Result{Passed: false, Feedback: feedback}
	}

	// No recognizable marker. Fail closed, surface what the model said.
	if trimmed == "" {
		return Result{Passed: false, Feedback: genericFailFeedback}
	}
	return Result{Passed: false, Feedback: trimmed}
}

// Normalize lowercases, trims surrounding whitespace, and removes
// period characters. This is the exact-match shortcut only; semantic
// equivalence is the model's job.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, ".", "")
}
