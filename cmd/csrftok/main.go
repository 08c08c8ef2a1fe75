// Package main provides the entry point for csrftok.
//
// csrftok creates and verifies stateless CSRF tokens from the command
// line, either one command at a time or in an interactive session.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/csrftok/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
