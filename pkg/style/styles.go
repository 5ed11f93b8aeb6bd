// Package style defines the lipgloss styles of terminal output
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/stamp/pkg/types"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)

	FlagStyle = lipgloss.NewStyle().
			Foreground(FlagColor)
)

// Outcome styles
var (
	CreatedStyle = lipgloss.NewStyle().
			Foreground(CreatedColor).
			Bold(true)

	OverwrittenStyle = lipgloss.NewStyle().
				Foreground(OverwrittenColor).
				Bold(true)

	SkippedStyle = lipgloss.NewStyle().
			Foreground(UnchangedColor)

	ExistsStyle = lipgloss.NewStyle().
			Foreground(UnchangedColor).
			Faint(true)
)

// OutcomeStyle returns the style for an entry outcome
func OutcomeStyle(outcome types.Outcome) lipgloss.Style {
	switch outcome {
	case types.OutcomeCreated:
		return CreatedStyle
	case types.OutcomeOverwritten:
		return OverwrittenStyle
	case types.OutcomeSkipped:
		return SkippedStyle
	case types.OutcomeExists:
		return ExistsStyle
	default:
		return lipgloss.NewStyle()
	}
}
