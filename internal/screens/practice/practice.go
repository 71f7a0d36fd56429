// Package practice walks the learner through the mission's twenty
// sentence-production prompts, grading each answer as it is submitted.
package practice

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/learnflow"
	pr "github.com/abhisek/lingoz/internal/practice"
	"github.com/abhisek/lingoz/internal/router"
	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/screens/drill"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/layout"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// PracticeScreen iterates the mission prompts one at a time.
type PracticeScreen struct {
	flow *learnflow.Service
	sess *learnflow.Session

	idx          int
	input        components.TextInput
	grading      bool
	showFeedback bool
	lastResult   pr.Result
	lastAnswer   string
	errMsg       string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

type gradedMsg struct {
	idx    int
	answer string
	res    pr.Result
	err    error
}

// New creates the practice screen over the session's active mission.
func New(flow *learnflow.Service, sess *learnflow.Session) *PracticeScreen {
	return &PracticeScreen{
		flow:  flow,
		sess:  sess,
		input: components.NewTextInput("Write the sentence in English...", 70),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PracticeScreen) prompts() int {
	return len(p.sess.Mission.Prompts)
}

func (p *PracticeScreen) finished() bool {
	return p.idx >= p.prompts()
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradedMsg:
		p.grading = false
		if msg.err != nil {
			p.errMsg = msg.err.Error()
			return p, nil
		}
		p.lastResult = msg.res
		p.lastAnswer = msg.answer
		p.showFeedback = true
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if !p.grading && !p.showFeedback && !p.finished() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		if !p.grading && !p.showFeedback && !p.finished() {
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	switch {
	case p.finished():
		return p, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: drill.New(p.flow, p.sess)}
		}
	case p.showFeedback:
		p.showFeedback = false
		p.idx++
		p.input.Reset()
		return p, nil
	case p.grading:
		return p, nil
	default:
		return p, p.grade()
	}
}

func (p *PracticeScreen) grade() tea.Cmd {
	idx := p.idx
	answer := p.input.Value()
	p.grading = true
	p.errMsg = ""
	return func() tea.Msg {
		res, err := p.flow.GradePractice(context.Background(), p.sess, idx, answer)
		return gradedMsg{idx: idx, answer: answer, res: res, err: err}
	}
}

func (p *PracticeScreen) View(width, height int) string {
	if p.finished() {
		return p.renderDone(width, height)
	}

	prompt := p.sess.Mission.Prompts[p.idx]
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("문장 연습"))

	bar := components.NewProgressBar(
		fmt.Sprintf("%d / %d", p.idx+1, p.prompts()),
		float64(p.idx)/float64(p.prompts()),
		false, 40)
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar.View()))

	card := theme.Gloss.Render(prompt.PromptText) + "\n\n" +
		theme.Hint.Render("구조: "+prompt.HintStructure) + "\n" +
		theme.Hint.Render("문법: "+prompt.HintGrammar)
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(card)))

	switch {
	case p.grading:
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render("채점 중..."))
	case p.showFeedback:
		sections = append(sections, p.renderFeedback(width))
	default:
		sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(p.input.View()))
		if p.errMsg != "" {
			sections = append(sections, theme.Incorrect.Width(width).Align(lipgloss.Center).Render(p.errMsg))
		}
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (p *PracticeScreen) renderFeedback(width int) string {
	prompt := p.sess.Mission.Prompts[p.idx]
	var body string
	if p.lastResult.Passed {
		body = theme.Correct.Render("정답이에요! 🎉")
	} else {
		body = theme.Incorrect.Render("아쉬워요!") + "\n" +
			theme.Body.Render("내 답: "+p.lastAnswer) + "\n" +
			theme.Body.Render("정답: "+prompt.TargetSentence)
		if p.lastResult.Feedback != "" {
			body += "\n" + theme.Gloss.Render(p.lastResult.Feedback)
		}
	}
	body += "\n\n" + theme.Hint.Render("Enter로 다음 문장")
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(body))
}

func (p *PracticeScreen) renderDone(width, height int) string {
	passed := p.sess.Practice.PassedCount()
	msg := theme.Title.Render("문장 연습 끝!") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d문장 중 %d문장 통과", p.prompts(), passed)) + "\n\n" +
		theme.Hint.Render("Enter를 눌러 단어 암기 게임 시작")
	return lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).Render(msg)
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.finished() {
		return []layout.KeyHint{{Key: "Enter", Description: "Start drill"}}
	}
	if p.showFeedback {
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
