package handlers

import (
	"context"
	"fmt"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/layout"
	"github.com/paasboot/paasboot/internal/render"
)

// Factory function variables for plan - can be replaced in tests.
var (
	// loadDescriptor loads a descriptor from file.
	loadDescriptor = config.Load

	// findDescriptorFile finds the default descriptor file.
	findDescriptorFile = config.FindDescriptorFile

	// printPlan writes the rendered plan to stdout.
	printPlan = func(s string) { fmt.Println(s) }
)

// Plan resolves the descriptor and displays the deployment plan without
// touching the cloud.
func Plan(_ context.Context, configPath string, jsonOutput bool) error {
	plan, l, err := resolveFromFile(configPath)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer()
	if jsonOutput {
		printPlan(render.NewPlainRenderer().FormatJSON(plan, l))
		return nil
	}
	printPlan(renderer.Format(plan, l))

	return nil
}

// resolveFromFile loads the descriptor, computes the role placement and
// resolves the plan. Shared by the plan and up handlers so the two can
// never disagree about what a descriptor means.
//
// The placement is computed before resolution because the replication
// factor derives from the database-role machine count. When min/max are
// absent or inconsistent no placement exists yet; resolution is run
// anyway so the operator gets the precise field error.
func resolveFromFile(configPath string) (*config.Plan, *layout.Layout, error) {
	if configPath == "" {
		path, err := findDescriptorFile()
		if err != nil {
			return nil, nil, fmt.Errorf("no descriptor found: %w\nRun 'paasboot init' to create one", err)
		}
		configPath = path
	}

	desc, err := loadDescriptor(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load descriptor: %w", err)
	}

	var l *layout.Layout
	dbVMCount := 0
	if desc.Min != nil && desc.Max != nil && *desc.Min >= 1 && *desc.Max >= *desc.Min {
		l = layout.Compute(*desc.Min, *desc.Max)
		dbVMCount = l.Count(layout.RoleDatabase)
	}

	plan, err := config.Resolve(desc, dbVMCount)
	if err != nil {
		return nil, nil, err
	}

	return plan, l, nil
}
