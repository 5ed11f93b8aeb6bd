// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
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
	w := &writer{out: r.output}
	for _, job := range rep.Jobs {
		prefix := ""
		if rep.DryRun {
			prefix = "(dry run) "
		}
		w.printf("%s%s -> %s\n", prefix, job.Template, job.Target)
		for _, e := range job.Entries {
			w.printf("  %-11s %s\n", e.Outcome, job.DisplayPath(e))
		}
	}
	w.printf("%s\n", rep.Summary())
	return w.err
}

func (r *Renderer) catalog(c *display.Catalog) error {
	w := &writer{out: r.output}
	if len(c.Families) == 0 {
		w.printf("No template families in %s\n", c.Root)
		return w.err
	}
	w.printf("Templates in %s:\n", c.Root)
	for i := range c.Families {
		w.printf("\n")
		if w.err != nil {
			return w.err
		}
		if err := r.family(&c.Families[i], false); err != nil {
			return err
		}
	}
	return w.err
}

func (r *Renderer) family(f *display.Family, readme bool) error {
	w := &writer{out: r.output}
	w.printf("%s\n", f.Name)
	w.printf("  variants:  %s\n", list(f.Variants))
	w.printf("  examples:  %s\n", list(f.Examples))
	if len(f.Variables) > 0 {
		w.printf("  variables:\n")
		for _, v := range f.Variables {
			w.printf("    %s\n", VariableLine(v))
		}
	}
	if readme && f.Readme != "" {
		w.printf("\n%s", f.Readme)
		if !strings.HasSuffix(f.Readme, "\n") {
			w.printf("\n")
		}
	}
	return w.err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	w := &writer{out: r.output}
	w.printf("Error: %v\n", err)
	for _, line := range DetailLines(err) {
		w.printf("  %s\n", line)
	}
	return w.err
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// VariableLine describes a variable on one line
func VariableLine(v display.Variable) string {
	line := fmt.Sprintf("%-16s %s", v.Flag, v.Marker)
	if v.Required {
		line += " (required)"
	}
	if v.Default != "" {
		line += fmt.Sprintf(" [default: %s]", v.Default)
	}
	if v.Help != "" {
		line += "  " + v.Help
	}
	return line
}

// DetailLines lists the details of a coded error as "key: value", sorted
func DetailLines(err error) []string {
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// writer keeps the first write error
type writer struct {
	out io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}
