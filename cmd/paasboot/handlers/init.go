package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// stdinIsTerminal reports whether the wizard can prompt.
	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before clobbering an existing descriptor.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive descriptor wizard.
	runWizard = wizard.RunWizard

	// buildDescriptor converts wizard answers into a descriptor.
	buildDescriptor = wizard.BuildDescriptor

	// writeDescriptor writes the descriptor to a file.
	writeDescriptor = wizard.WriteDescriptor
)

// Init runs the descriptor wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if !stdinIsTerminal() {
		return fmt.Errorf("init is interactive and requires a terminal; write %s by hand for scripted setups", outputPath)
	}

	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("overwrite prompt failed: %w", err)
		}
		if !ok {
			fmt.Println("Aborted; existing file left untouched.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	desc, err := buildDescriptor(result)
	if err != nil {
		return fmt.Errorf("failed to build descriptor: %w", err)
	}

	if err := writeDescriptor(desc, outputPath); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}

	printInitSuccess(outputPath, desc)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("paasboot - PaaS clusters on EC2-compatible clouds")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment descriptor with sensible defaults.")
	fmt.Println("Settings you leave empty are derived from the cluster shape at")
	fmt.Println("resolve time.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, desc *config.Descriptor) {
	fmt.Println()
	fmt.Println("Descriptor saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Infrastructure: %s\n", *desc.Infrastructure)
	fmt.Printf("  Machine:        %s\n", *desc.Machine)
	fmt.Printf("  Instance type:  %s\n", *desc.InstanceType)
	fmt.Printf("  Cluster size:   %d-%d nodes\n", *desc.Min, *desc.Max)
	if desc.Table != nil {
		fmt.Printf("  Datastore:      %s\n", *desc.Table)
	} else {
		fmt.Printf("  Datastore:      %s (default)\n", config.TableCassandra)
	}
	if desc.Replication != nil {
		fmt.Printf("  Replication:    %d\n", *desc.Replication)
	} else {
		fmt.Println("  Replication:    derived from cluster shape")
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your cloud credentials:")
	fmt.Println("     export AWS_ACCESS_KEY_ID=<your-key-id>")
	fmt.Println("     export AWS_SECRET_ACCESS_KEY=<your-secret>")
	fmt.Println()
	fmt.Printf("  2. Review the plan:\n")
	fmt.Printf("     paasboot plan -c %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Bootstrap the cluster:")
	fmt.Printf("     paasboot up -c %s -i <ssh-key>\n", outputPath)
	fmt.Println()
}
