package main

import (
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/stamp/cmd/stamp/commands"
	"github.com/arthur-debert/stamp/internal/cli"
	"github.com/arthur-debert/stamp/internal/version"
	"github.com/arthur-debert/stamp/pkg/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	rootCmd := cli.NewRootCmd(app, commands.Registry())

	header := &doc.GenManHeader{
		Title:   "STAMP",
		Section: "1",
		Source:  "stamp " + version.Version,
		Manual:  "stamp manual",
	}

	logging.Must(doc.GenMan(rootCmd, header, os.Stdout), "failed to generate man page")
}
