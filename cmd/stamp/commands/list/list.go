package list

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/ui/display"
)

const (
	msgShort = "List the template families of the catalog"
	msgLong  = "List shows every family in the templates directory with its variants, examples and variables."
)

// Register adds the list command
func Register(reg *cli.CommandRegistry) {
	reg.Add("list", NewCommand)
}

// NewCommand creates the list command
func NewCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   msgShort,
		Long:    msgLong,
		GroupID: cli.GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := Catalog(app)
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

// Catalog builds the catalog view
func Catalog(app *cli.App) (*display.Catalog, error) {
	c, err := app.Catalog()
	if err != nil {
		return nil, err
	}
	names, err := c.Families()
	if err != nil {
		return nil, err
	}

	view := &display.Catalog{Root: c.Root(), Families: make([]display.Family, 0, len(names))}
	for _, name := range names {
		family, err := c.Family(name)
		if err != nil {
			return nil, err
		}
		f, err := display.NewFamily(family)
		if err != nil {
			return nil, err
		}
		view.Families = append(view.Families, f)
	}
	return view, nil
}
