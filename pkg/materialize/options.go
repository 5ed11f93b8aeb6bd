package materialize

import (
	"io/fs"

	"github.com/arthur-debert/stamp/pkg/render"
	"github.com/arthur-debert/stamp/pkg/types"
)

// Default permissions for created paths
const (
	DefaultFileMode fs.FileMode = 0644
	DefaultDirMode  fs.FileMode = 0755
)

// Options describes one materialization job
type Options struct {
	// TemplateRoot is the directory whose tree is reproduced
	TemplateRoot string

	// TargetRoot is where the tree is reproduced
	TargetRoot string

	// Context is handed unchanged to every render call
	Context map[string]any

	// Substitutions maps path markers to their replacement
	Substitutions map[string]string

	// ExistsPolicy is one of skip, error or overwrite. Empty means error.
	ExistsPolicy string

	// FS defaults to the OS filesystem
	FS types.FS

	// Renderer overrides Engine when set
	Renderer render.Renderer

	// Engine names the template engine, defaults to pongo2
	Engine string

	// Ignore lists base-name globs left out of the walk
	Ignore []string

	// DryRun resolves and renders every entry without writing anything
	DryRun bool

	// FileMode and DirMode default to 0644 and 0755. Executable bits of a
	// source file are carried over to its target.
	FileMode fs.FileMode
	DirMode  fs.FileMode
}
