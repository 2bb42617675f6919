package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██████╗ ██████╗ ███████╗██╗   ██╗ █████╗ ██╗
 ██╔════╝██╔═══██╗██╔══██╗██╔════╝██║   ██║██╔══██╗██║
 ██║     ██║   ██║██║  ██║█████╗  ██║   ██║███████║██║
 ██║     ██║   ██║██║  ██║██╔══╝  ╚██╗ ██╔╝██╔══██║██║
 ╚██████╗╚██████╔╝██████╔╝███████╗ ╚████╔╝ ██║  ██║███████╗
  ╚═════╝ ╚═════╝ ╚═════╝ ╚══════╝  ╚═══╝  ╚═╝  ╚═╝╚══════╝`

const bannerCompact = "C O D E V A L"

// RenderBanner returns the banner styled in the primary color, or a
// compact form for terminals narrower than 62 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 62 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
