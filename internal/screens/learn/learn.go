// Package learn presents the day's mission: topic, grammar card, and
// the twenty vocabulary pairs to study before practice.
package learn

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/learnflow"
	"github.com/abhisek/lingoz/internal/router"
	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/screens/practice"
	"github.com/abhisek/lingoz/internal/ui/layout"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// LearnScreen loads and displays the daily mission.
type LearnScreen struct {
	flow *learnflow.Service
	sess *learnflow.Session

	loading bool
	errMsg  string
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

type missionReadyMsg struct {
	err error
}

// New creates the learn screen. The mission is generated in Init so
// the screen can show a loading state while the model responds.
func New(flow *learnflow.Service, sess *learnflow.Session) *LearnScreen {
	return &LearnScreen{flow: flow, sess: sess, loading: true}
}

func (l *LearnScreen) Init() tea.Cmd {
	if l.sess.Mission != nil {
		l.loading = false
		return nil
	}
	return l.loadMission()
}

func (l *LearnScreen) loadMission() tea.Cmd {
	return func() tea.Msg {
		err := l.flow.StartMission(context.Background(), l.sess)
		return missionReadyMsg{err: err}
	}
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case missionReadyMsg:
		l.loading = false
		if msg.err != nil {
			l.errMsg = msg.err.Error()
		}
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if l.errMsg == "" && !l.loading {
				return l, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: practice.New(l.flow, l.sess)}
				}
			}
		case "r":
			if l.errMsg != "" {
				l.loading = true
				l.errMsg = ""
				return l, l.loadMission()
			}
		}
	}
	return l, nil
}

func (l *LearnScreen) View(width, height int) string {
	if l.loading {
		return lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).
			Render(theme.Hint.Render("오늘의 미션을 만들고 있어요..."))
	}
	if l.errMsg != "" {
		msg := theme.Incorrect.Render("미션 생성에 실패했어요") + "\n" +
			theme.Hint.Render(l.errMsg) + "\n\n" +
			theme.Hint.Render("r 키로 다시 시도")
		return lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).Render(msg)
	}

	m := l.sess.Mission
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("오늘의 주제: "+m.Topic))
	sections = append(sections, l.renderGrammar(width))
	sections = append(sections, l.renderWords(width))
	sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render("단어를 다 외웠으면 Enter로 문장 연습 시작!"))

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (l *LearnScreen) renderGrammar(width int) string {
	g := l.sess.Mission.Grammar
	body := theme.Selected.Render(g.Title) + "\n" +
		theme.Body.Render(g.Description) + "\n" +
		theme.Body.Render("규칙: "+g.Rule) + "\n" +
		theme.Gloss.Render("예문: "+g.Example)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(body))
}

// renderWords lays the twenty pairs out in two columns of ten.
func (l *LearnScreen) renderWords(width int) string {
	words := l.sess.Mission.Words
	half := (len(words) + 1) / 2

	var left, right []string
	for i, w := range words {
		entry := fmt.Sprintf("%-14s %s", w.Term, theme.Gloss.Render(w.Meaning))
		if i < half {
			left = append(left, entry)
		} else {
			right = append(right, entry)
		}
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(left, "\n"),
		"    ",
		strings.Join(right, "\n"))
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Card.Render(columns))
}

func (l *LearnScreen) Title() string {
	return "Learn"
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	if l.errMsg != "" {
		return []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}
