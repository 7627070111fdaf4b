package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msaldanha/nulldev/timeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	serverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	focusedPanelTitleStyle = panelTitleStyle.
				Background(lipgloss.Color("25")).
				Foreground(lipgloss.Color("255"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	normalStyle = lipgloss.NewStyle().
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

var categoryColors = map[timeline.Category]lipgloss.Color{
	timeline.Categories.Raid:    lipgloss.Color("203"),
	timeline.Categories.Region:  lipgloss.Color("75"),
	timeline.Categories.Level:   lipgloss.Color("42"),
	timeline.Categories.JobGrow: lipgloss.Color("141"),
	timeline.Categories.Default: lipgloss.Color("252"),

	// item rarities
	"커먼":   lipgloss.Color("250"),
	"언커먼":  lipgloss.Color("45"),
	"레어":   lipgloss.Color("177"),
	"유니크":  lipgloss.Color("205"),
	"레전더리": lipgloss.Color("208"),
	"에픽":   lipgloss.Color("220"),
	"신화":   lipgloss.Color("196"),
	"태초":   lipgloss.Color("84"),
}

func categoryStyle(c timeline.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = categoryColors[timeline.Categories.Default]
	}
	return lipgloss.NewStyle().Foreground(color)
}
