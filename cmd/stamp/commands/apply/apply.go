package apply

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/substitute"
	"github.com/arthur-debert/stamp/pkg/types"
	"github.com/arthur-debert/stamp/pkg/values"
)

// Register adds the apply command
func Register(reg *cli.CommandRegistry) {
	reg.Add("apply", NewCommand)
}

type options struct {
	existsPolicy string
	name         string
	subs         []string
	valueFiles   []string
	sets         []string
}

// NewCommand creates the apply command
func NewCommand(app *cli.App) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "apply <template-path> <target-path>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: cli.GroupCore,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := opts.jobSpec(args[0], args[1])
			if err != nil {
				return err
			}
			return app.Materialize("apply", []cli.JobSpec{spec})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.existsPolicy, "exists-policy", "", MsgFlagExistsPolicy)
	flags.StringVarP(&opts.name, "name", "n", "", MsgFlagName)
	flags.StringArrayVarP(&opts.subs, "sub", "s", nil, MsgFlagSub)
	flags.StringArrayVarP(&opts.valueFiles, "values", "f", nil, MsgFlagValues)
	flags.StringArrayVar(&opts.sets, "set", nil, MsgFlagSet)

	_ = cmd.RegisterFlagCompletionFunc("exists-policy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return types.PolicyNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (o options) jobSpec(template, target string) (cli.JobSpec, error) {
	ctx, err := values.Load(o.valueFiles, o.sets)
	if err != nil {
		return cli.JobSpec{}, err
	}
	subs, err := ParseSubs(o.subs)
	if err != nil {
		return cli.JobSpec{}, err
	}
	if o.name != "" {
		subs[substitute.NameMarker] = o.name
		if _, ok := ctx["name"]; !ok {
			ctx["name"] = o.name
		}
	}
	return cli.JobSpec{
		Template:      template,
		Target:        target,
		Context:       ctx,
		Substitutions: subs,
		ExistsPolicy:  o.existsPolicy,
	}, nil
}

// ParseSubs parses MARKER=VALUE pairs. The value may be empty, the
// marker may not.
func ParseSubs(pairs []string) (map[string]string, error) {
	subs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		marker, value, ok := strings.Cut(pair, "=")
		if !ok || marker == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid substitution %q, expected MARKER=VALUE", pair).
				WithDetail("sub", pair)
		}
		subs[marker] = value
	}
	return subs, nil
}
