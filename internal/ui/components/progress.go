package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a colored bar with an "x/100" label.
type ScoreBar struct {
	Label string
	Score int
	Width int
}

// NewScoreBar creates a score bar. Scores are clamped to 0..100.
func NewScoreBar(label string, score, width int) ScoreBar {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ScoreBar{Label: label, Score: score, Width: width}
}

// View renders the bar.
func (p ScoreBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Label) + "  "
	}

	scoreText := theme.ScoreColor(p.Score).Bold(true).Render(fmt.Sprintf("  %d/100", p.Score))

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(scoreText)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * p.Score / 100
	empty := barWidth - filled

	color := theme.Success
	switch {
	case p.Score < 60:
		color = theme.Error
	case p.Score < 80:
		color = theme.Warning
	}

	result += lipgloss.NewStyle().Background(color).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	return result + scoreText
}
