package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Text colors. AdaptiveColor picks the variant matching the terminal background.
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#F0F3F6"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#9EA7B3"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
	FlagColor    = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"}
)

// Outcome colors
var (
	CreatedColor     = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	OverwrittenColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	// Skipped files and existing directories share the muted color
	UnchangedColor = MutedColor
)
