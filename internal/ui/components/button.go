package components

import (
	"strings"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// Button is a key-triggered action shown in an action bar.
type Button struct {
	Key     string
	Label   string
	Primary bool
	// Disabled buttons are dimmed, e.g. while a request is in flight.
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = b.Key + "  " + label
	}
	if b.Primary && !b.Disabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ActionBar renders buttons side by side.
func ActionBar(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "  ")
}
