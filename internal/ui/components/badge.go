package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

// Badge renders a short inline label.
func Badge(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Render(text)
}

// ImportanceBadge colors a skill importance: Critical, Important, else nice-to-have.
func ImportanceBadge(importance string) string {
	switch importance {
	case "Critical":
		return Badge(importance, theme.BadgeCritical)
	case "Important":
		return Badge(importance, theme.BadgeImportant)
	default:
		return Badge(importance, theme.BadgeNice)
	}
}

// DifficultyBadge colors a question difficulty: Hard, Medium, else easy.
func DifficultyBadge(difficulty string) string {
	switch difficulty {
	case "Hard":
		return Badge(difficulty, theme.BadgeCritical)
	case "Medium":
		return Badge(difficulty, theme.BadgeImportant)
	default:
		return Badge(difficulty, theme.BadgeNice)
	}
}

// Badges joins badges horizontally with a gap.
func Badges(badges ...string) string {
	var parts []string
	for _, b := range badges {
		if b != "" {
			parts = append(parts, b, " ")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts[:len(parts)-1]...)
}
