package commands

import (
	"github.com/spf13/cobra"

	"github.com/paasboot/paasboot/cmd/paasboot/handlers"
	"github.com/paasboot/paasboot/internal/config"
)

// Init returns the command for interactively creating a deployment
// descriptor.
//
// This command guides users through creating a descriptor YAML file
// using an interactive wizard with text inputs and single-select
// prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "paasboot.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment descriptor",
		Long: `Interactively create a deployment descriptor file.

This command guides you through describing your deployment
step by step. It will ask about:

  - Cloud target (infrastructure, machine image, instance type)
  - Access (keypair and security group names)
  - Cluster size (initial and maximum node counts)
  - Datastore backend and replication factor
  - App server scaling mode

The generated descriptor records only what you decided; optional
settings left at their defaults are derived at resolve time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultDescriptorFile, "Output file path")

	return cmd
}
