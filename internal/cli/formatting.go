package cli

import (
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

var formattingOnce sync.Once

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	formattingOnce.Do(func() {
		cobra.AddTemplateFuncs(template.FuncMap{
			"bold":      formatBold,
			"upper":     strings.ToUpper,
			"boldUpper": formatBoldUpper,
		})
	})
}
