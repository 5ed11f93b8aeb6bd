// Package render expands template file contents against a render context.
//
// Two engines are available. pongo2 (the default) understands Django/Jinja
// syntax: {{ name }}, {% if %}, {% for %}, filters and {% include %}
// resolved against the template root. gotemplate uses text/template.
// Either way the output is byte-exact apart from the expansions, and
// referencing a variable the context does not define fails the render.
//
// With pongo2 every variable an expression names must be defined: output
// tags, filter arguments, operands of not/and/or and comparisons, for
// sources and if/elif conditions. An operand followed by |default is exempt.
// Templates pulled in by a literal {% include %} path are checked too.
package render

import (
	"io/fs"
	"unicode/utf8"

	"github.com/arthur-debert/stamp/pkg/errors"
	"github.com/arthur-debert/stamp/pkg/registry"
)

// Renderer expands the content of one template file.
// relPath identifies the file in error reports.
type Renderer interface {
	Render(relPath, content string, ctx map[string]any) (string, error)
}

// Func adapts an ordinary function to the Renderer interface
type Func func(relPath, content string, ctx map[string]any) (string, error)

// Render calls f
func (f Func) Render(relPath, content string, ctx map[string]any) (string, error) {
	return f(relPath, content, ctx)
}

// Factory builds a renderer whose includes resolve inside templates.
// templates may be nil when includes are not needed.
type Factory func(templates fs.FS) Renderer

// Engine names
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "gotemplate"

	DefaultEngine = EnginePongo2
)

// Engines returns a registry holding every built-in engine
func Engines() *registry.Registry[Factory] {
	reg := registry.New[Factory]()
	registry.MustRegister(reg, EnginePongo2, func(templates fs.FS) Renderer { return NewPongo(templates) })
	registry.MustRegister(reg, EngineGoTemplate, func(templates fs.FS) Renderer { return NewGoTemplate() })
	return reg
}

// New builds the named engine. An empty name selects DefaultEngine.
func New(engine string, templates fs.FS) (Renderer, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	factory, err := Engines().Get(engine)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfiguration, "unknown template engine %q", engine).
			WithDetail("engine", engine)
	}
	return factory(templates), nil
}

func renderError(err error, relPath string) error {
	return errors.Wrapf(err, errors.ErrTemplateRendering, "failed to render %q", relPath).
		WithDetail(errors.DetailPath, relPath)
}

func checkEncoding(relPath, content string) error {
	if !utf8.ValidString(content) {
		return errors.Newf(errors.ErrTemplateRendering, "template %q is not valid UTF-8", relPath).
			WithDetail(errors.DetailPath, relPath)
	}
	return nil
}
