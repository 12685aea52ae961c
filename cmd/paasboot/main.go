// Package main is the entry point for the paasboot CLI.
//
// paasboot bootstraps PaaS clusters on EC2-compatible clouds: it
// resolves a deployment descriptor into a validated plan, allocates the
// initial machines, and prepares each one over SSH until the cluster
// runtime can be deployed.
//
// Commands: init, plan, up, version, completion.
//
// For detailed usage information, run:
//
//	paasboot --help
package main

import (
	"fmt"
	"os"

	"github.com/paasboot/paasboot/cmd/paasboot/commands"
	"github.com/paasboot/paasboot/internal/config"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(config.ExitCode(err))
	}
}
