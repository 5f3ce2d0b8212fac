// Package main is the entry point for the schemaforge CLI.
package main

import (
	"os"

	"github.com/schemaforge/schemaforge/cmd/schemaforge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
