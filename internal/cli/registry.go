package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/pkg/registry"
)

// CommandFactory builds a command bound to an App
type CommandFactory func(app *App) *cobra.Command

// CommandRegistry collects command factories in registration order
type CommandRegistry struct {
	factories *registry.Registry[CommandFactory]
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{factories: registry.New[CommandFactory]()}
}

// Add registers a factory. Names must be unique.
func (r *CommandRegistry) Add(name string, factory CommandFactory) {
	registry.MustRegister(r.factories, name, factory)
}

// Names returns the registered command names in registration order
func (r *CommandRegistry) Names() []string {
	return r.factories.Names()
}

// Build instantiates every registered command
func (r *CommandRegistry) Build(app *App) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, r.factories.Count())
	_ = r.factories.Each(func(_ string, factory CommandFactory) error {
		cmds = append(cmds, factory(app))
		return nil
	})
	return cmds
}
