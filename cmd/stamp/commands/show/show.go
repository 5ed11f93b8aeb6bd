package show

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/ui/display"
)

const (
	msgShort = "Show a template family and its README"
	msgLong  = `Show prints the variants, examples and variables of one family followed
by the README.md found at the top of the family directory. In a terminal
the README is rendered as markdown.`
)

// Register adds the show command
func Register(reg *cli.CommandRegistry) {
	reg.Add("show", NewCommand)
}

// NewCommand creates the show command
func NewCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <family>",
		Short:   msgShort,
		Long:    msgLong,
		GroupID: cli.GroupConfig,
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			c, err := app.Catalog()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			names, _ := c.Families()
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := Family(app, args[0])
			if err != nil {
				return err
			}
			renderer, err := app.Renderer()
			if err != nil {
				return err
			}
			return renderer.RenderResult(view)
		},
	}
}

// Family builds the view of one family, README included
func Family(app *cli.App, name string) (*display.Family, error) {
	c, err := app.Catalog()
	if err != nil {
		return nil, err
	}
	family, err := c.Family(name)
	if err != nil {
		return nil, err
	}
	view, err := display.NewFamily(family)
	if err != nil {
		return nil, err
	}
	if view.Readme, err = family.Readme(); err != nil {
		return nil, err
	}
	return &view, nil
}
