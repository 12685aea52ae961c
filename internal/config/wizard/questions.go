package wizard

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/paasboot/paasboot/internal/config"
)

// machineImageRegex matches EC2 (ami-) and Eucalyptus (emi-) image IDs.
var machineImageRegex = regexp.MustCompile(`^(ami|emi)-[0-9a-fA-F]{8,17}$`)

// keynameRegex validates keypair names: 1-64 alphanumeric, hyphens or
// underscores.
var keynameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// runCloudTargetGroup prompts for the cloud, image and instance type.
func runCloudTargetGroup(ctx context.Context, result *Result) error {
	result.Infrastructure = string(config.InfraEC2)
	result.InstanceType = InstanceTypes[0].Value

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Infrastructure").
				Description("Cloud API flavor the deployment runs on").
				Options(InfrastructureOptions...).
				Value(&result.Infrastructure),
			huh.NewInput().
				Title("Machine Image").
				Description("Image every cluster node boots from").
				Placeholder("ami-0123abcd").
				Value(&result.Machine).
				Validate(validateMachineImage),
			huh.NewSelect[string]().
				Title("Instance Type").
				Description("Size of every cluster node").
				Options(InstanceTypesToOptions(InstanceTypes)...).
				Value(&result.InstanceType),
		).Title("Cloud Target"),
	).RunWithContext(ctx)
}

// runAccessGroup prompts for the keypair and security group names.
func runAccessGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Keyname").
				Description("Keypair created for this deployment; must not already exist in the cloud account").
				Placeholder("paasboot-prod").
				Value(&result.Keyname).
				Validate(validateKeyname),
			huh.NewInput().
				Title("Security Group").
				Description("Security group created for this deployment; must not already exist").
				Placeholder("paasboot").
				Value(&result.Group).
				Validate(validateGroup),
		).Title("Access"),
	).RunWithContext(ctx)
}

// runClusterSizeGroup prompts for the minimum and maximum node counts.
func runClusterSizeGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum Nodes").
				Description("Machines launched at startup").
				Placeholder("3").
				Value(&result.Min).
				Validate(validateCount),
			huh.NewInput().
				Title("Maximum Nodes").
				Description("Ceiling the deployment may scale to").
				Placeholder("5").
				Value(&result.Max).
				Validate(func(s string) error { return validateMax(result.Min, s) }),
		).Title("Cluster Size"),
	).RunWithContext(ctx)
}

// runDatastoreGroup prompts for the datastore backend and replication.
func runDatastoreGroup(ctx context.Context, result *Result) error {
	result.Table = string(config.TableCassandra)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Datastore").
				Description("Database backend the cluster stores data in").
				Options(TableOptions...).
				Value(&result.Table),
			huh.NewInput().
				Title("Replication Factor (Optional)").
				Description("Copies of every record. Leave empty to derive from the cluster shape.").
				Value(&result.Replication).
				Validate(validateOptionalCount),
		).Title("Datastore"),
	).RunWithContext(ctx)
}

// runAppServerGroup prompts for the app server scaling mode.
func runAppServerGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("App Servers (Optional)").
				Description("Fixed app server count per application. Leave empty for autoscaling.").
				Value(&result.AppEngine).
				Validate(validateOptionalCount),
			huh.NewConfirm().
				Title("Verbose Logging?").
				Description("Raise the cluster log level for debugging").
				Value(&result.Verbose),
		).Title("App Servers"),
	).RunWithContext(ctx)
}

// validateMachineImage validates the machine image ID format.
func validateMachineImage(s string) error {
	if s == "" {
		return errMachineRequired
	}
	if !machineImageRegex.MatchString(s) {
		return errMachineInvalid
	}
	return nil
}

// validateKeyname validates the keypair name format.
func validateKeyname(s string) error {
	if s == "" {
		return errKeynameRequired
	}
	if !keynameRegex.MatchString(s) {
		return errKeynameInvalid
	}
	return nil
}

// validateGroup validates the security group name.
func validateGroup(s string) error {
	if strings.TrimSpace(s) == "" {
		return errGroupRequired
	}
	return nil
}

// validateCount requires a positive integer.
func validateCount(s string) error {
	if s == "" {
		return errCountRequired
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errCountInvalid
	}
	return nil
}

// validateMax requires a positive integer no smaller than the minimum.
// The minimum is re-parsed at validation time because the operator may
// revisit the earlier field.
func validateMax(minInput, s string) error {
	if err := validateCount(s); err != nil {
		return err
	}
	minCount, err := strconv.Atoi(minInput)
	if err != nil {
		return nil // min invalid; its own validator reports it
	}
	maxCount, _ := strconv.Atoi(s)
	if maxCount < minCount {
		return errMaxBelowMin
	}
	return nil
}

// validateOptionalCount accepts empty or a positive integer.
func validateOptionalCount(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return errOptionalCountInvalid
	}
	return nil
}

// parseCount converts a form-validated count input.
func parseCount(s string) (int, error) {
	if err := validateCount(s); err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

// parseOptionalCount converts an optional count input, nil when empty.
func parseOptionalCount(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	if err := validateOptionalCount(s); err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, errOptionalCountInvalid
	}
	return &n, nil
}
