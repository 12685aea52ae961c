package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/paasboot/paasboot/internal/config"
)

// InstanceTypeOption represents a cloud instance type.
type InstanceTypeOption struct {
	Value       string
	Label       string
	Description string
}

// InfrastructureOptions contains the supported cloud targets.
var InfrastructureOptions = []huh.Option[string]{
	huh.NewOption("Amazon EC2", string(config.InfraEC2)),
	huh.NewOption("Eucalyptus (private cloud)", string(config.InfraEucalyptus)),
}

// InstanceTypes contains the instance types the platform is sized for.
// Smaller types lack the memory the database and app servers need.
var InstanceTypes = []InstanceTypeOption{
	{Value: "m1.large", Label: "m1.large", Description: "2 vCPU, 7.5GB RAM"},
	{Value: "m1.xlarge", Label: "m1.xlarge", Description: "4 vCPU, 15GB RAM"},
	{Value: "c1.xlarge", Label: "c1.xlarge", Description: "8 vCPU, 7GB RAM"},
	{Value: "m2.2xlarge", Label: "m2.2xlarge", Description: "4 vCPU, 34GB RAM"},
}

// TableOptions contains the supported datastore backends.
var TableOptions = []huh.Option[string]{
	huh.NewOption("Cassandra (default)", string(config.TableCassandra)),
	huh.NewOption("Hypertable", string(config.TableHypertable)),
}

// InstanceTypesToOptions converts instance type options to huh options.
func InstanceTypesToOptions(types []InstanceTypeOption) []huh.Option[string] {
	options := make([]huh.Option[string], len(types))
	for i, t := range types {
		options[i] = huh.NewOption(t.Label+" - "+t.Description, t.Value)
	}
	return options
}
