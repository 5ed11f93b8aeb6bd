package render

import (
	"bytes"
	"text/template"
)

// GoTemplate renders with text/template. Missing map keys are errors.
type GoTemplate struct{}

// NewGoTemplate creates a text/template renderer
func NewGoTemplate() *GoTemplate {
	return &GoTemplate{}
}

// Render implements Renderer
func (g *GoTemplate) Render(relPath, content string, ctx map[string]any) (string, error) {
	if err := checkEncoding(relPath, content); err != nil {
		return "", err
	}

	tpl, err := template.New(relPath).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", renderError(err, relPath)
	}
	if ctx == nil {
		ctx = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, ctx); err != nil {
		return "", renderError(err, relPath)
	}
	return buf.String(), nil
}
