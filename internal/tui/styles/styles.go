// Package styles holds the lipgloss palette shared by terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple (violet-400)
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue
	BorderColor    = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Content area
	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Error message
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Success message
	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Warning message
	WarningMsg = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// Side labels
	PropositionLabel = lipgloss.NewStyle().
				Foreground(BlueColor).
				Bold(true)

	OppositionLabel = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// Segment states shown in the progress view.
const (
	StatePending  = "pending"
	StateDrafting = "drafting"
	StateDrafted  = "drafted"
	StateVoicing  = "voicing"
	StateVoiced   = "voiced"
	StateFailed   = "failed"
)

// StatusColor returns the color for a given segment state
func StatusColor(state string) lipgloss.Color {
	switch state {
	case StateDrafting, StateVoicing:
		return SecondaryColor
	case StateDrafted:
		return BlueColor
	case StateVoiced:
		return PrimaryColor
	case StateFailed:
		return ErrorColor
	default:
		return MutedColor
	}
}

// StatusIcon returns an icon for a given segment state
func StatusIcon(state string) string {
	switch state {
	case StatePending:
		return "○"
	case StateDrafting, StateVoicing:
		return "●"
	case StateDrafted:
		return "◐"
	case StateVoiced:
		return "✓"
	case StateFailed:
		return "✗"
	default:
		return "●"
	}
}

// SideLabel returns the label style for a debate side name.
func SideLabel(side string) lipgloss.Style {
	if side == "opposition" {
		return OppositionLabel
	}
	return PropositionLabel
}

// Truncate shortens s to maxWidth terminal columns, ending in "...". Escape
// sequences and wide runes are measured the way the terminal draws them.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "...")
}
