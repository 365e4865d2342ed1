package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepcoach/internal/ui/layout"
)

// Screen is one page of the application.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StepProvider is implemented by screens that are part of a multi-step
// flow. The header shows "Step current/total".
type StepProvider interface {
	Step() (current, total int)
}

// EscapeHandler is implemented by screens that use Esc themselves when
// they are the bottom of the stack.
type EscapeHandler interface {
	HandlesEscape() bool
}
