// Package home is the entry screen: today's attendance, streak, and
// the menu into the learning flow.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/learnflow"
	"github.com/abhisek/lingoz/internal/router"
	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/screens/learn"
	"github.com/abhisek/lingoz/internal/screens/leveltest"
	"github.com/abhisek/lingoz/internal/screens/wordbook"
	"github.com/abhisek/lingoz/internal/store"
	"github.com/abhisek/lingoz/internal/ui/components"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

// HomeScreen is the main entry screen of the application.
type HomeScreen struct {
	menu       components.Menu
	sess       *learnflow.Session
	missedTop  []store.WrongWord
	attendance learnflow.Attendance
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for an active session.
func New(flow *learnflow.Service, sess *learnflow.Session, wrongWords store.WrongWordRepo) *HomeScreen {
	var missedTop []store.WrongWord
	if wrongWords != nil {
		missedTop, _ = wrongWords.TopMissed(context.Background(), sess.UserID, 3)
	}

	items := []components.MenuItem{
		{Label: "START TODAY'S MISSION", Action: func() tea.Cmd {
			return func() tea.Msg {
				if flow.NeedsLevelTest(sess) {
					return router.PushScreenMsg{Screen: leveltest.New(flow, sess)}
				}
				return router.PushScreenMsg{Screen: learn.New(flow, sess)}
			}
		}},
		{Label: "MY WORDBOOK", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: wordbook.New(sess.UserID, wrongWords)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		sess:       sess,
		missedTop:  missedTop,
		attendance: sess.Attendance,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("L I N G O Z"))
	sections = append(sections, theme.Subtitle.Width(width).Render("매일 20단어, 20문장 영어 미션"))

	sections = append(sections, h.renderGreeting(width))
	sections = append(sections, h.renderStats(width))

	menuBox := theme.Card.Render(h.menu.View())
	sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(menuBox))

	if len(h.missedTop) > 0 {
		sections = append(sections, h.renderMissedWords(width))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) renderGreeting(width int) string {
	var line string
	switch h.attendance.Status {
	case learnflow.AttendanceFirst:
		line = "첫 방문을 환영해요!"
	case learnflow.AttendanceExtended:
		line = fmt.Sprintf("출석 %d일째! 계속 이어가 볼까요?", h.attendance.Streak)
	case learnflow.AttendanceReset:
		line = fmt.Sprintf("%d일 만에 돌아왔네요. 다시 시작해요!", h.attendance.MissedDays+1)
	default:
		line = "오늘도 함께 공부해요!"
	}
	return theme.Body.Width(width).Align(lipgloss.Center).Render(line)
}

func (h *HomeScreen) renderStats(width int) string {
	level := h.sess.Profile.CurrentLevel
	if level == "" {
		level = "미정"
	}
	stats := fmt.Sprintf("레벨 %s   ★ %d일 연속   완료한 미션 %d개",
		level, h.sess.Profile.Streak, h.sess.Profile.TotalCompleteCount)
	return theme.Hint.Width(width).Align(lipgloss.Center).Render(stats)
}

func (h *HomeScreen) renderMissedWords(width int) string {
	parts := make([]string, 0, len(h.missedTop))
	for _, w := range h.missedTop {
		parts = append(parts, fmt.Sprintf("%s (%d)", w.Word, w.WrongCount))
	}
	line := "자주 틀리는 단어: " + strings.Join(parts, ", ")
	return theme.Hint.Width(width).Align(lipgloss.Center).Render(line)
}
