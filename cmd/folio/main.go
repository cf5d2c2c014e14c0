// Package main provides the folio command.
package main

import (
	"os"

	"github.com/moriz82/folio/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
