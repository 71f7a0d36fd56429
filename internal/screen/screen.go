// Package screen defines the contract every view in the app satisfies.
// Screens are stacked by the router; the active one receives messages
// and renders between the shared header and footer.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingoz/internal/ui/layout"
)

// Screen is one view in the learning flow (home, level test, learn,
// practice, drill, wordbook).
type Screen interface {
	// Init returns an initial command when the screen is first created.
	// Screens that load data (mission generation, wordbook query) do it
	// here so the first frame can show a loading state.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens whose footer
// hints change with their state (the drill's hints differ per phase).
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
