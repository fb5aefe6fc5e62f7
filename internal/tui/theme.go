package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset this UI uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Width(12)
	focusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFocus).Width(12)
	dirtyStyle   = lipgloss.NewStyle().Foreground(colorPeach)
	helpStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	infoStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	phaseStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 1)
	chosenStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	optionStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	tagStyleBase = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#1e1e2e"))
)

func tagAccentColors() []lipgloss.Color {
	return []lipgloss.Color{colorSky, colorLavender, colorYellow, colorMauve, colorPink, colorTeal, colorBlue, colorGreen}
}

// tagStyle picks a stable color per tag name.
func tagStyle(name string) lipgloss.Style {
	colors := tagAccentColors()
	h := 0
	for _, r := range name {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return tagStyleBase.Background(colors[h%len(colors)])
}
