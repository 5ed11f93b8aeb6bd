// Package clitest builds isolated Apps for command tests
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/pkg/config"
)

// App is an App with captured output streams
type App struct {
	*cli.App
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// NewApp returns an App that ignores the user's config, writes no log file
// and prints plain text. A non-empty templatesDir becomes templates_dir.
func NewApp(t *testing.T, templatesDir string) *App {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("STAMP_LOG__FILE", "false")
	if templatesDir != "" {
		t.Setenv("STAMP_TEMPLATES_DIR", templatesDir)
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := cli.NewApp(stdout, stderr)
	app.ConfigPaths = config.Paths{
		User:       filepath.Join(home, "config.toml"),
		ProjectDir: home,
	}
	app.Format = "text"
	return &App{App: app, Stdout: stdout, Stderr: stderr}
}

// Run executes args against a fresh command tree built from reg
func (a *App) Run(reg *cli.CommandRegistry, args ...string) error {
	return cli.Execute(a.App, reg, args)
}
