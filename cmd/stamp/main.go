package main

import (
	"os"

	"github.com/arthur-debert/stamp/cmd/stamp/commands"
	"github.com/arthur-debert/stamp/internal/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := cli.Execute(app, commands.Registry(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
