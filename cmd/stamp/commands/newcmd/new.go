// Package newcmd exposes the template families of the catalog as
// subcommands of "stamp new".
package newcmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/catalog"
	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Register adds the new command
func Register(reg *cli.CommandRegistry) {
	reg.Add("new", NewCommand)
}

// NewCommand creates the new command with one subcommand per family found
// in the catalog when the command tree is built.
func NewCommand(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new <family> <target-path>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: cli.GroupCore,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			c, err := app.Catalog()
			if err != nil {
				return err
			}
			if _, err := c.Family(args[0]); err != nil {
				return err
			}
			return errors.Newf(errors.ErrInvalidInput, "template family %q could not be loaded", args[0])
		},
	}

	c, err := app.Catalog()
	if err != nil {
		log.Debug().Err(err).Msg("no template catalog, new has no families")
		return cmd
	}
	names, err := c.Families()
	if err != nil {
		log.Debug().Err(err).Msg("cannot list template families")
		return cmd
	}
	for _, name := range names {
		family, err := c.Family(name)
		if err != nil {
			log.Warn().Err(err).Str("family", name).Msg("skipping template family")
			continue
		}
		cmd.AddCommand(familyCommand(app, family))
	}
	return cmd
}

func familyCommand(app *cli.App, family *catalog.Family) *cobra.Command {
	var (
		variant      string
		examples     []string
		existsPolicy string
	)
	vars := family.Variables()
	inputs := make(map[string]*string, len(vars))

	cmd := &cobra.Command{
		Use:   family.Name + " <target-path>",
		Short: fmt.Sprintf(MsgFamilyShort, family.Name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			supplied := make(map[string]string, len(inputs))
			for name, value := range inputs {
				if cmd.Flags().Changed(vars[name].Flag()) {
					supplied[name] = *value
				}
			}
			specs, err := Plan(family, variant, examples, supplied, args[0])
			if err != nil {
				return err
			}
			for i := range specs {
				specs[i].ExistsPolicy = existsPolicy
			}
			return app.Materialize("new "+family.Name, specs)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&variant, "variant", catalog.DefaultVariant, MsgFlagVariant)
	flags.StringArrayVar(&examples, "example", nil, MsgFlagExample)
	flags.StringVar(&existsPolicy, "exists-policy", "", MsgFlagExistsPolicy)
	for _, name := range vars.Names() {
		v := vars[name]
		help := v.Help
		if help == "" {
			help = v.Name
		}
		inputs[name] = flags.String(v.Flag(), v.Default, help)
		if v.IsRequired() {
			_ = cmd.MarkFlagRequired(v.Flag())
		}
	}

	_ = cmd.RegisterFlagCompletionFunc("variant", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names, _ := family.Variants()
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("example", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names, _ := family.Examples()
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("exists-policy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return types.PolicyNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// Plan resolves the jobs for one family: the variant first, then each
// example in order, all sharing the same values and target.
func Plan(family *catalog.Family, variant string, examples []string, supplied map[string]string, target string) ([]cli.JobSpec, error) {
	ctx, subs, err := family.Variables().Resolve(supplied)
	if err != nil {
		return nil, err
	}

	root, err := family.VariantPath(variant)
	if err != nil {
		return nil, err
	}
	specs := []cli.JobSpec{{Template: root, Target: target, Context: ctx, Substitutions: subs}}

	for _, example := range examples {
		root, err := family.ExamplePath(example)
		if err != nil {
			return nil, err
		}
		specs = append(specs, cli.JobSpec{Template: root, Target: target, Context: ctx, Substitutions: subs})
	}
	return specs, nil
}
