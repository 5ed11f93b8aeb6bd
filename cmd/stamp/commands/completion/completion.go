package completion

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/internal/cli"
)

const (
	msgShort = "Generate shell completion script"
	msgLong  = `To load completions:

Bash:
  $ source <(stamp completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ stamp completion bash > /etc/bash_completion.d/stamp
  # macOS:
  $ stamp completion bash > /usr/local/etc/bash_completion.d/stamp

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ stamp completion zsh > "${fpath[1]}/_stamp"

Fish:
  $ stamp completion fish | source
  $ stamp completion fish > ~/.config/fish/completions/stamp.fish

PowerShell:
  PS> stamp completion powershell | Out-String | Invoke-Expression`
)

// Register adds the completion command
func Register(reg *cli.CommandRegistry) {
	reg.Add("completion", NewCommand)
}

// NewCommand creates the completion command
func NewCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 msgShort,
		Long:                  msgLong,
		GroupID:               cli.GroupMisc,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(app.Out, true)
			case "zsh":
				return root.GenZshCompletion(app.Out)
			case "fish":
				return root.GenFishCompletion(app.Out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(app.Out)
			}
		},
	}
}
