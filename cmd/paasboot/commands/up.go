package commands

import (
	"github.com/spf13/cobra"

	"github.com/paasboot/paasboot/cmd/paasboot/handlers"
)

// Up returns the command for bootstrapping a cluster.
//
// This command handles the complete bootstrap workflow: resolving the
// descriptor, checking credential names against the cloud account,
// allocating the initial machines, and preparing each one over SSH.
//
// Flags:
//
//	--config, -c: Path to the descriptor file (default: auto-detect paasboot.yaml)
//	--key-file, -i: Path to the SSH private key used to reach the machines (required)
//
// Environment variables:
//
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: cloud credentials
//	EC2_URL: API endpoint (Eucalyptus deployments only)
func Up() *cobra.Command {
	var (
		configPath string
		keyFile    string
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Allocate and prepare the cluster machines",
		Long: `Bootstrap the cluster described by the deployment descriptor.

This command resolves the descriptor into a plan, verifies the keypair
and security group names are unused in the cloud account, allocates the
initial machines, and prepares each one over SSH.

If no descriptor is specified, it looks for paasboot.yaml in the current
directory. Use 'paasboot init' to create one.

Examples:
  # Bootstrap using paasboot.yaml in the current directory
  paasboot up -i ~/.ssh/paasboot.pem

  # Bootstrap using a specific descriptor
  paasboot up -c production.yaml -i ~/.ssh/paasboot.pem`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, keyFile)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to descriptor file (default: paasboot.yaml)")
	cmd.Flags().StringVarP(&keyFile, "key-file", "i", "", "Path to SSH private key (required)")
	_ = cmd.MarkFlagRequired("key-file")

	return cmd
}
