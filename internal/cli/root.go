package cli

import (
	"io"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/stamp/internal/version"
	"github.com/arthur-debert/stamp/pkg/help"
	"github.com/arthur-debert/stamp/pkg/logging"
	"github.com/arthur-debert/stamp/pkg/ui"
)

// NewRootCmd creates the root command and attaches every registered command
func NewRootCmd(app *App, reg *CommandRegistry) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "stamp",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Setup(); err != nil {
				return err
			}
			logging.LogCommand(cmd.CommandPath(), args)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	// --templates may already be known from templatesFlag
	templates := app.TemplatesDir
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&app.Verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&app.DryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&app.Format, "format", app.Format, MsgFlagFormat)
	flags.StringVar(&app.TemplatesDir, "templates", "", MsgFlagTemplates)
	app.TemplatesDir = templates

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: MsgGroupCore},
		&cobra.Group{ID: GroupConfig, Title: MsgGroupConfig},
		&cobra.Group{ID: GroupMisc, Title: MsgGroupMisc},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	if reg != nil {
		rootCmd.AddCommand(reg.Build(app)...)
	}
	app.installHelp(rootCmd)
	rootCmd.SetHelpCommandGroupID(GroupMisc)
	return rootCmd
}

// Execute runs the root command and reports any error on the error stream
func Execute(app *App, reg *CommandRegistry, args []string) error {
	app.TemplatesDir = templatesFlag(args)
	rootCmd := NewRootCmd(app, reg)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		app.ReportError(err)
	}
	return err
}

// templatesFlag finds --templates ahead of cobra. Commands that list the
// catalog are built before cobra parses flags.
func templatesFlag(args []string) string {
	fs := pflag.NewFlagSet("stamp", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	dir := fs.String("templates", "", MsgFlagTemplates)
	_ = fs.Parse(args)
	return *dir
}

func (a *App) installHelp(rootCmd *cobra.Command) {
	topics, err := fs.Sub(helpTopics, "topics")
	if err != nil {
		log.Debug().Err(err).Msg("help topics unavailable")
		return
	}
	manager, err := help.New(topics, help.Options{Renderer: help.RendererFunc(a.renderTopic)})
	if err != nil {
		log.Debug().Err(err).Msg("help topics unavailable")
		return
	}
	manager.Install(rootCmd)
}

// renderTopic uses markdown styling only when the output is styled
func (a *App) renderTopic(content, format string) string {
	f, err := ui.ParseFormat(a.Format)
	if err != nil || ui.Resolve(f, a.Out) != ui.FormatTerminal {
		return content
	}
	return help.NewGlamourRenderer().Render(content, format)
}
