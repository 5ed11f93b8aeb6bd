// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/stamp/pkg/style"
	"github.com/arthur-debert/stamp/pkg/ui/display"
	"github.com/arthur-debert/stamp/pkg/ui/text"
)

// Renderer provides styled output. Family READMEs are rendered as markdown.
type Renderer struct {
	output io.Writer
	// Width wraps rendered markdown; 0 keeps glamour's default
	Width int
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Report:
		return r.report(v)
	case *display.Catalog:
		return r.catalog(v)
	case *display.Family:
		return r.family(v, true)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) report(rep *display.Report) error {
	for _, job := range rep.Jobs {
		title := fmt.Sprintf("%s → %s", job.Template, job.Target)
		if rep.DryRun {
			title = "(dry run) " + title
		}
		if _, err := fmt.Fprintln(r.output, style.TitleStyle.Render(title)); err != nil {
			return err
		}
		for _, e := range job.Entries {
			outcome := style.OutcomeStyle(e.Outcome).Render(fmt.Sprintf("%-11s", e.Outcome))
			if _, err := fmt.Fprintf(r.output, "  %s %s\n", outcome, style.PathStyle.Render(job.DisplayPath(e))); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(r.output, style.MutedStyle.Render(rep.Summary()))
	return err
}

func (r *Renderer) catalog(c *display.Catalog) error {
	if len(c.Families) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("No template families in "+c.Root))
		return err
	}
	if _, err := fmt.Fprintln(r.output, style.TitleStyle.Render("Templates in "+c.Root)); err != nil {
		return err
	}
	for i := range c.Families {
		if _, err := fmt.Fprintln(r.output); err != nil {
			return err
		}
		if err := r.family(&c.Families[i], false); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) family(f *display.Family, readme bool) error {
	lines := []string{
		style.TitleStyle.Render(f.Name),
		"  " + style.MutedStyle.Render("variants: ") + join(f.Variants),
		"  " + style.MutedStyle.Render("examples: ") + join(f.Examples),
	}
	for _, v := range f.Variables {
		lines = append(lines, "    "+style.FlagStyle.Render(text.VariableLine(v)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}

	if readme && f.Readme != "" {
		_, err := fmt.Fprint(r.output, "\n"+r.markdown(f.Readme))
		return err
	}
	return nil
}

// markdown renders with glamour, falling back to the raw text
func (r *Renderer) markdown(content string) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintln(r.output, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err))); werr != nil {
		return werr
	}
	for _, line := range text.DetailLines(err) {
		if _, werr := fmt.Fprintln(r.output, "  "+style.MutedStyle.Render(line)); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func join(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
