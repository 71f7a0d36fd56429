// Package wordbook shows the learner's most-missed vocabulary so they
// can review it outside the drill.
package wordbook

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoz/internal/screen"
	"github.com/abhisek/lingoz/internal/store"
	"github.com/abhisek/lingoz/internal/ui/layout"
	"github.com/abhisek/lingoz/internal/ui/theme"
)

const maxEntries = 20

// WordbookScreen lists a user's wrong words ordered by miss count.
type WordbookScreen struct {
	userID string
	repo   store.WrongWordRepo
	words  []store.WrongWord
	errMsg string
}

var _ screen.Screen = (*WordbookScreen)(nil)
var _ screen.KeyHintProvider = (*WordbookScreen)(nil)

type loadedMsg struct {
	words []store.WrongWord
	err   error
}

// New creates the wordbook screen.
func New(userID string, repo store.WrongWordRepo) *WordbookScreen {
	return &WordbookScreen{userID: userID, repo: repo}
}

func (w *WordbookScreen) Init() tea.Cmd {
	return func() tea.Msg {
		words, err := w.repo.TopMissed(context.Background(), w.userID, maxEntries)
		return loadedMsg{words: words, err: err}
	}
}

func (w *WordbookScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(loadedMsg); ok {
		if m.err != nil {
			w.errMsg = m.err.Error()
		} else {
			w.words = m.words
		}
	}
	return w, nil
}

func (w *WordbookScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Width(width).Render("나의 단어장"))

	switch {
	case w.errMsg != "":
		sections = append(sections, theme.Incorrect.Width(width).Align(lipgloss.Center).Render(w.errMsg))
	case len(w.words) == 0:
		sections = append(sections, theme.Hint.Width(width).Align(lipgloss.Center).Render("아직 틀린 단어가 없어요. 잘하고 있어요!"))
	default:
		var rows []string
		for i, word := range w.words {
			row := fmt.Sprintf("%2d. %-18s %s  %s",
				i+1,
				word.Word,
				theme.Gloss.Render(word.Meaning),
				theme.Hint.Render(fmt.Sprintf("×%d", word.WrongCount)))
			rows = append(rows, row)
		}
		table := theme.Card.Render(strings.Join(rows, "\n"))
		sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(table))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(content)
}

func (w *WordbookScreen) Title() string {
	return "Wordbook"
}

func (w *WordbookScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}
