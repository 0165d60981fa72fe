package preview

import "github.com/charmbracelet/lipgloss"

// Catppuccin mocha, close to the site's dark palette.
var (
	colorBase     = lipgloss.Color("#1e1e2e")
	colorSurface0 = lipgloss.Color("#313244")
	colorSurface1 = lipgloss.Color("#45475a")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorLavender = lipgloss.Color("#b4befe")
	colorSapphire = lipgloss.Color("#74c7ec")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorPeach    = lipgloss.Color("#fab387")

	navStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	navScrolledStyle = navStyle.Background(colorSurface0)

	brandStyle     = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	navLinkStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	navActiveStyle = lipgloss.NewStyle().Foreground(colorLavender).Bold(true).Underline(true)

	headingStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	tagStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorLavender).
			Background(colorBase).
			Foreground(colorText).
			Padding(1, 2)

	menuStyle = paneStyle.BorderForeground(colorSurface1).Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext).Padding(0, 1)
)
