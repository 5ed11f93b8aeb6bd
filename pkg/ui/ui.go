// Package ui renders command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/ui/json"
	"github.com/arthur-debert/stamp/pkg/ui/terminal"
	"github.com/arthur-debert/stamp/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a display.Report, display.Catalog or display.Family
	RenderResult(result interface{}) error

	// RenderError renders an error with its code and location
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Resolve turns FormatAuto into a concrete format for output. Files are
// inspected with DetectFormat; any other writer gets plain text.
func Resolve(format Format, output io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := output.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// NewRenderer creates a renderer for format, resolving FormatAuto first
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch Resolve(format, output) {
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
