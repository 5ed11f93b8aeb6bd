package render

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var autoescapeOnce sync.Once

// Templates here are source files, not HTML
func disableAutoescape() {
	autoescapeOnce.Do(func() { pongo2.SetAutoescape(false) })
}

// noTemplates is an empty tree used when no include root is given
var noTemplates embed.FS

// Pongo renders with pongo2. Included templates are parsed once and cached
// for the lifetime of the renderer.
type Pongo struct {
	set       *pongo2.TemplateSet
	templates fs.FS
}

// NewPongo creates a pongo2 renderer resolving {% include %} paths in templates
func NewPongo(templates fs.FS) *Pongo {
	disableAutoescape()
	if templates == nil {
		templates = noTemplates
	}
	return &Pongo{
		set:       pongo2.NewSet("stamp", pongo2.NewFSLoader(templates)),
		templates: templates,
	}
}

// Render implements Renderer
func (p *Pongo) Render(relPath, content string, ctx map[string]any) (string, error) {
	if err := checkEncoding(relPath, content); err != nil {
		return "", err
	}
	if err := checkTemplate(content, ctx, p.templates); err != nil {
		return "", renderError(err, relPath)
	}

	tpl, err := p.set.FromString(content)
	if err != nil {
		return "", renderError(err, relPath)
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", renderError(err, relPath)
	}
	return out, nil
}
