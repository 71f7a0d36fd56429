// Package leveltest runs the proficiency check that gates a mission:
// one spoken-style question, a typed answer, and a committed level.
package leveltest

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/assess"
	"github.com/abhisek/lingoz/internal/learnflow"
	"github.com/abhisek/lingoz/internal/router"
	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/screens/learn"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/layout"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// LevelTestScreen collects an answer and classifies the learner.
type LevelTestScreen struct {
	flow *learnflow.Service
	sess *learnflow.Session

	input      components.TextInput
	evaluating bool
	tooShort   bool
	errMsg     string
	level      assess.Level
	done       bool
}

var _ screen.Screen = (*LevelTestScreen)(nil)
var _ screen.KeyHintProvider = (*LevelTestScreen)(nil)

type evaluatedMsg struct {
	level assess.Level
	err   error
}

// New creates the level test screen.
func New(flow *learnflow.Service, sess *learnflow.Session) *LevelTestScreen {
	return &LevelTestScreen{
		flow:  flow,
		sess:  sess,
		input: components.NewTextInput("Answer in English...", 60),
	}
}

func (l *LevelTestScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LevelTestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluatedMsg:
		l.evaluating = false
		switch {
		case errors.Is(msg.err, assess.ErrNoSignal):
			l.tooShort = true
			l.input.Reset()
		case msg.err != nil:
			l.errMsg = msg.err.Error()
		default:
			l.level = msg.level
			l.done = true
		}
		return l, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if l.done {
				return l, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: learn.New(l.flow, l.sess)}
				}
			}
			if !l.evaluating {
				return l, l.evaluate()
			}
			return l, nil
		}
	}

	if !l.evaluating && !l.done {
		var cmd tea.Cmd
		l.input, cmd = l.input.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LevelTestScreen) evaluate() tea.Cmd {
	answer := l.input.Value()
	l.evaluating = true
	l.tooShort = false
	l.errMsg = ""
	return func() tea.Msg {
		level, err := l.flow.EvaluateLevel(context.Background(), l.sess, answer)
		return evaluatedMsg{level: level, err: err}
	}
}

func (l *LevelTestScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Width(width).Render("레벨 테스트"))
	sections = append(sections, theme.Subtitle.Width(width).Render("영어로 한두 문장 답해 보세요"))

	question := theme.Card.Render(theme.Body.Render(assess.Question))
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(question))

	switch {
	case l.done:
		result := theme.Correct.Render("테스트 완료! 레벨: "+string(l.level)) + "\n" +
			theme.Hint.Render("Enter를 눌러 오늘의 미션을 시작하세요")
		sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(result))
	case l.evaluating:
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render("채점 중..."))
	default:
		sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(l.input.View()))
		if l.tooShort {
			sections = append(sections, theme.Incorrect.Width(width).Align(lipgloss.Center).Render("답이 너무 짧아요. 조금 더 길게 답해 주세요."))
		}
		if l.errMsg != "" {
			sections = append(sections, theme.Incorrect.Width(width).Align(lipgloss.Center).Render(l.errMsg))
		}
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (l *LevelTestScreen) Title() string {
	return "Level Test"
}

func (l *LevelTestScreen) KeyHints() []layout.KeyHint {
	if l.done {
		return []layout.KeyHint{{Key: "Enter", Description: "Start mission"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
