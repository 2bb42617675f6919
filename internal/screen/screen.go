package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that are currently taking text
// input, so global keys like esc and q are passed through to them.
type InputCapturer interface {
	CapturingInput() bool
}

// RevealedMsg is sent to a screen when the screen above it is popped.
type RevealedMsg struct{}
