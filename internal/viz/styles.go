package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pixmorph/internal/morph"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Padding(0, 2).Width(44)
	helpBox     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Title).MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(10)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Italic(true)
}

// StatusStyle picks the colour for a session status.
func StatusStyle(s morph.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case morph.StatusRunning:
		return base.Foreground(CurrentTheme.Running)
	case morph.StatusFinished:
		return base.Foreground(CurrentTheme.Done)
	case morph.StatusTargetError, morph.StatusSourceError:
		return base.Foreground(CurrentTheme.Error)
	default:
		return base.Foreground(CurrentTheme.Waiting)
	}
}

// ProgressBar renders percent in [0, 1] as a bar of the given width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Running).Render(bar)
}
