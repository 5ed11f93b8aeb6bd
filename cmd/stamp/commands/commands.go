// Package commands wires every stamp command into a registry
package commands

import (
	"github.com/arthur-debert/stamp/cmd/stamp/commands/apply"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/completion"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/config"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/list"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/newcmd"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/show"
	"github.com/arthur-debert/stamp/cmd/stamp/commands/version"
	"github.com/arthur-debert/stamp/internal/cli"
)

// Registry returns a registry holding every command in help order
func Registry() *cli.CommandRegistry {
	reg := cli.NewCommandRegistry()
	apply.Register(reg)
	newcmd.Register(reg)
	list.Register(reg)
	show.Register(reg)
	config.Register(reg)
	version.Register(reg)
	completion.Register(reg)
	return reg
}
