package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepcoach/internal/ui/theme"
)

const bannerArt = ` ██████╗ ██████╗ ███████╗██████╗
 ██╔══██╗██╔══██╗██╔════╝██╔══██╗
 ██████╔╝██████╔╝█████╗  ██████╔╝
 ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ██║     ██║  ██║███████╗██║
 ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "P R E P"

// bannerLines is the number of rows in the full banner.
var bannerLines = len(strings.Split(bannerArt, "\n"))

// RenderBanner returns the first rows of the banner in the primary color.
// Narrow terminals get the compact form.
func RenderBanner(width, rows int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	lines := strings.Split(bannerArt, "\n")
	if rows < len(lines) {
		lines = lines[:max(rows, 0)]
	}
	return style.Render(strings.Join(lines, "\n"))
}
