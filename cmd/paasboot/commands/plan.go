package commands

import (
	"github.com/spf13/cobra"

	"github.com/paasboot/paasboot/cmd/paasboot/handlers"
)

// Plan returns the command for resolving and displaying a deployment
// plan without touching the cloud.
//
// Optional flags:
//
//	--config, -c: Path to the descriptor file (default: auto-detect paasboot.yaml)
//	--json: Emit the plan as JSON for tooling
func Plan() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the descriptor and show the deployment plan",
		Long: `Resolve the deployment descriptor and show the resulting plan.

The descriptor is validated and every derived setting -- replication
factor, app server scaling mode, role placement -- is computed exactly
as 'paasboot up' would, but nothing is launched and no cloud credentials
are needed.

Examples:
  # Show the plan for paasboot.yaml in the current directory
  paasboot plan

  # Show the plan for a specific descriptor
  paasboot plan -c production.yaml

  # Emit the plan as JSON
  paasboot plan --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to descriptor file (default: paasboot.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the plan as JSON")

	return cmd
}
