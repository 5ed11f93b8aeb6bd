package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/internal/version"
	"github.com/arthur-debert/stamp/pkg/ui"
)

// Register adds the version command
func Register(reg *cli.CommandRegistry) {
	reg.Add("version", NewCommand)
}

// NewCommand creates the version command
func NewCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		Long:    "Print detailed version information including commit hash and build date",
		GroupID: cli.GroupMisc,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if format, _ := ui.ParseFormat(app.Format); format == ui.FormatJSON {
				renderer, err := app.Renderer()
				if err != nil {
					return err
				}
				return renderer.RenderResult(info)
			}
			_, err := fmt.Fprint(app.Out, info.String())
			return err
		},
	}
}
