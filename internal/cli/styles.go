package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/raysh454/inspectra/internal/model"
)

var (
	colorWhite = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim   = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// badge renders a status label in its dashboard foreground color.
func badge(label string, style model.StatusStyle) string {
	s := lipgloss.NewStyle().Bold(true)
	if style.Foreground != "" {
		s = s.Foreground(lipgloss.Color(style.Foreground))
	}
	return s.Render(label)
}

// severityStyle picks a color for an issue severity.
func severityStyle(sev string) lipgloss.Style {
	switch sev {
	case "Critical", "5":
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(model.StatusError.Style().Foreground))
	case "Major", "4":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(model.StatusRunning.Style().Foreground))
	default:
		return styleLabel
	}
}
