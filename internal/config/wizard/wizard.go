package wizard

import (
	"context"
	"fmt"

	"github.com/paasboot/paasboot/internal/config"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Cloud target
	Infrastructure string
	Machine        string
	InstanceType   string

	// Credentials and isolation
	Keyname string
	Group   string

	// Cluster size, as entered. Validated as positive integers by the
	// form before the group is accepted.
	Min string
	Max string

	// Datastore
	Table string
	// Replication is empty when the operator left the factor to be
	// derived from the cluster shape.
	Replication string

	// AppEngine pins a static app server count; empty means dynamic.
	AppEngine string

	Verbose bool
}

// RunWizard runs the interactive descriptor wizard. The context is used
// for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runCloudTargetGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cloud target: %w", err)
	}

	if err := runAccessGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}

	if err := runClusterSizeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster size: %w", err)
	}

	if err := runDatastoreGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("datastore: %w", err)
	}

	if err := runAppServerGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("app servers: %w", err)
	}

	return result, nil
}

// BuildDescriptor converts wizard answers into a descriptor. Optional
// answers left empty stay absent so that resolution derives them.
func BuildDescriptor(result *Result) (*config.Descriptor, error) {
	minCount, err := parseCount(result.Min)
	if err != nil {
		return nil, fmt.Errorf("min: %w", err)
	}
	maxCount, err := parseCount(result.Max)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}

	desc := &config.Descriptor{
		Infrastructure: stringPtr(result.Infrastructure),
		Machine:        stringPtr(result.Machine),
		InstanceType:   stringPtr(result.InstanceType),
		Keyname:        stringPtr(result.Keyname),
		Group:          stringPtr(result.Group),
		Min:            &minCount,
		Max:            &maxCount,
	}

	if result.Table != "" && result.Table != string(config.TableCassandra) {
		desc.Table = stringPtr(result.Table)
	}
	if result.Replication != "" {
		n, err := parseOptionalCount(result.Replication)
		if err != nil {
			return nil, fmt.Errorf("replication: %w", err)
		}
		desc.Replication = n
	}
	if result.AppEngine != "" {
		n, err := parseOptionalCount(result.AppEngine)
		if err != nil {
			return nil, fmt.Errorf("appengine: %w", err)
		}
		desc.AppEngine = n
	}
	if result.Verbose {
		verbose := true
		desc.Verbose = &verbose
	}

	return desc, nil
}

func stringPtr(s string) *string { return &s }
