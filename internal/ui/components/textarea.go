package components

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with a character counter against a
// minimum length.
type TextArea struct {
	Model     textarea.Model
	MinLength int
}

// NewTextArea creates a focused multi-line input.
func NewTextArea(placeholder string, minLength int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	return TextArea{Model: ta, MinLength: minLength}
}

// Update forwards input to the textarea.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetSize sets the visible size in cells.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// SetValue replaces the content.
func (t *TextArea) SetValue(s string) {
	t.Model.SetValue(s)
}

// Value returns the current content.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// Counter renders "n characters" colored by whether MinLength is met.
func (t TextArea) Counter() string {
	n := utf8.RuneCountInString(t.Value())
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.MinLength > 0 {
		if n >= t.MinLength {
			style = style.Foreground(theme.Success)
		}
		return style.Render(fmt.Sprintf("%d characters (min %d)", n, t.MinLength))
	}
	return style.Render(fmt.Sprintf("%d characters", n))
}

// View renders the textarea.
func (t TextArea) View() string {
	return t.Model.View()
}
