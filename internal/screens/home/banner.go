package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/theme"
)

const bannerArt = `
 ██╗███╗   ██╗████████╗███████╗██████╗ ██╗   ██╗██╗   ██╗███████╗
 ██║████╗  ██║╚══██╔══╝██╔════╝██╔══██╗██║   ██║██║   ██║██╔════╝
 ██║██╔██╗ ██║   ██║   █████╗  ██████╔╝██║   ██║██║   ██║█████╗
 ██║██║╚██╗██║   ██║   ██╔══╝  ██╔══██╗╚██╗ ██╔╝██║   ██║██╔══╝
 ██║██║ ╚████║   ██║   ███████╗██║  ██║ ╚████╔╝ ╚██████╔╝███████╗
 ╚═╝╚═╝  ╚═══╝   ╚═╝   ╚══════╝╚═╝  ╚═╝  ╚═══╝   ╚═════╝ ╚══════╝`

const bannerCompact = "I N T E R V U E"

// renderBanner returns the banner styled in the primary color, falling back
// to a compact form below 70 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 70 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
