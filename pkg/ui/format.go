package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// Format selects a renderer
type Format int

const (
	// FormatAuto picks terminal or text from the output stream
	FormatAuto Format = iota
	// FormatTerminal is styled output for interactive use
	FormatTerminal
	// FormatText is unstyled output, stable for scripts and logs
	FormatText
	// FormatJSON is the machine readable report
	FormatJSON
)

// FormatNames lists the accepted --format values
var FormatNames = []string{"auto", "term", "text", "json"}

// aliases maps every accepted spelling, canonical names included
var aliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"json":     FormatJSON,
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(FormatNames) {
		return FormatNames[f]
	}
	return "unknown"
}

// ParseFormat reads a --format value, ignoring case
func ParseFormat(s string) (Format, error) {
	if f, ok := aliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (want one of %s)",
		s, strings.Join(FormatNames, ", ")).WithDetail("format", s)
}

// DetectFormat returns FormatTerminal only for a color capable terminal
// and an empty NO_COLOR
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
