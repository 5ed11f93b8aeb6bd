// Package help adds topic pages to a cobra command tree. Topics are text
// or markdown files read from an fs.FS; "help <topic>" prints one and
// "help topics" lists them next to the regular command help.
package help

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// OptionPrefix marks topics that document a flag
const OptionPrefix = "option-"

// Topic is one help page
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Format is the topic file extension
func (t Topic) Format() string {
	return path.Ext(t.Path)
}

// Options configures a Manager
type Options struct {
	// Extensions accepted as topics, [".txt", ".md"] by default
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// Manager holds the topics found in a filesystem
type Manager struct {
	topics   map[string]Topic
	renderer Renderer
}

// New loads every topic file under fsys
func New(fsys fs.FS, opts Options) (*Manager, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}
	m := &Manager{topics: make(map[string]Topic), renderer: opts.Renderer}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || !contains(extensions, ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRead, "failed to scan help topics")
	}
	return m, nil
}

// Get finds a topic. "--dry-run" and "dry-run" both match option-dry-run.
func (m *Manager) Get(name string) (Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics[OptionPrefix+name]
	return t, ok
}

// Names returns every topic name in lexicographic order
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render renders a topic with the configured renderer
func (m *Manager) Render(t Topic) string {
	return m.renderer.Render(t.Content, t.Format())
}

// WriteIndex lists the topics, general ones first
func (m *Manager) WriteIndex(w io.Writer, program string) error {
	names := m.Names()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, OptionPrefix); ok {
			options = append(options, "--"+opt)
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the help command of root with one that also knows the
// topics. Anything that is not a topic falls through to cobra's help. Call
// SetHelpCommandGroupID after Install to group the new command.
func (m *Manager) Install(root *cobra.Command) {
	original := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				original(root, nil)
				return nil
			case args[0] == "topics":
				return m.WriteIndex(out, root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				_, err := io.WriteString(out, m.Render(t))
				return err
			}
			target, _, err := root.Find(args)
			if target == nil || err != nil {
				return errors.Newf(errors.ErrNotFound, "unknown help topic %q", strings.Join(args, " "))
			}
			original(target, args)
			return nil
		},
	}
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
