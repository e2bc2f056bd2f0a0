package preview

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	NormalModeStyle         lipgloss.Style
	InsertModeStyle         lipgloss.Style
	StatusLineStyle         lipgloss.Style
	CommandLineStyle        lipgloss.Style
	MessageStyle            lipgloss.Style
	ErrorStyle              lipgloss.Style
	LineNumberStyle         lipgloss.Style
	OverflowLineNumberStyle lipgloss.Style
	ConcealedStyle          lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:         lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:         lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:         lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:            lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:              lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	OverflowLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Width(4).Align(lipgloss.Right),
	ConcealedStyle:          lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
}
