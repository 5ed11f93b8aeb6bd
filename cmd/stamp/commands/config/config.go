package config

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/config"
)

const (
	msgShort = "Print the effective configuration"
	msgLong  = `Config prints the configuration stamp runs with, as TOML. It merges the
built-in defaults, the user config file, a .stamp.toml in the current
directory and STAMP_* environment variables, later sources winning.
With --defaults only the built-in defaults are printed, which makes a
good starting point for a config file.`
	msgFlagDefaults = "Print the built-in defaults only"
)

// Register adds the config command
func Register(reg *cli.CommandRegistry) {
	reg.Add("config", NewCommand)
}

// NewCommand creates the config command
func NewCommand(app *cli.App) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   msgShort,
		Long:    msgLong,
		GroupID: cli.GroupConfig,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if defaults {
				cfg, err = config.Defaults()
			} else {
				cfg, err = app.Config()
			}
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = app.Out.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, msgFlagDefaults)
	return cmd
}
