// Package main provides the gitform command.
package main

import (
	"context"
	"os"

	"github.com/gopasspw/gitform/internal/cli"
)

// Build information set via ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if err := cli.NewRootCmd(version, commit, buildDate).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
