package config

import (
	"context"
	"fmt"
)

// maxDerivedReplication caps the derived replication factor. Beyond three
// copies the marginal fault-tolerance gain does not pay for the extra
// write amplification.
const maxDerivedReplication = 3

// Resolve validates a descriptor and produces a deployment plan.
//
// dbVMCount is the number of machines assigned the database role by the
// placement layout; it is an input here, not derived from min/max.
//
// Resolution is pure and fail-fast: the first violation aborts with a
// field-attributed error and no partial plan is ever returned.
func Resolve(desc *Descriptor, dbVMCount int) (*Plan, error) {
	if err := checkRequired(desc); err != nil {
		return nil, err
	}

	infra := Infrastructure(*desc.Infrastructure)
	if infra != InfraEC2 && infra != InfraEucalyptus {
		return nil, &InvalidEnumError{Field: "infrastructure", Value: *desc.Infrastructure, Allowed: Infrastructures}
	}

	table := TableCassandra
	if desc.Table != nil {
		table = Table(*desc.Table)
		if table != TableCassandra && table != TableHypertable {
			return nil, &InvalidEnumError{Field: "table", Value: *desc.Table, Allowed: Tables}
		}
	}

	if *desc.Min < 1 {
		return nil, &RangeError{Field: "min", Value: *desc.Min, Constraint: "must be at least 1"}
	}
	if *desc.Max < *desc.Min {
		return nil, &RangeError{Field: "max", Value: *desc.Max,
			Constraint: fmt.Sprintf("must be at least min (%d)", *desc.Min)}
	}
	if desc.AppEngine != nil && *desc.AppEngine < 1 {
		return nil, &RangeError{Field: "appengine", Value: *desc.AppEngine, Constraint: "must be at least 1"}
	}

	replication, err := resolveReplication(desc.Replication, dbVMCount)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Infrastructure:    infra,
		Machine:           *desc.Machine,
		InstanceType:      *desc.InstanceType,
		Table:             table,
		Keyname:           *desc.Keyname,
		Group:             *desc.Group,
		Min:               *desc.Min,
		Max:               *desc.Max,
		ReplicationFactor: replication,
	}

	if desc.Verbose != nil {
		plan.Verbose = *desc.Verbose
	}
	if desc.Test != nil {
		plan.Test = *desc.Test
	}
	if desc.SCP != nil {
		plan.SCPSource = *desc.SCP
	}
	if desc.AppEngine != nil {
		count := *desc.AppEngine
		plan.StaticAppServers = &count
	}

	return plan, nil
}

// checkRequired verifies every required field is present, independent of
// the validity of any other field. Empty strings count as missing for
// fields that must be non-empty.
func checkRequired(desc *Descriptor) error {
	required := []struct {
		name string
		set  bool
	}{
		{"infrastructure", desc.Infrastructure != nil && *desc.Infrastructure != ""},
		{"machine", desc.Machine != nil && *desc.Machine != ""},
		{"instance_type", desc.InstanceType != nil && *desc.InstanceType != ""},
		{"keyname", desc.Keyname != nil && *desc.Keyname != ""},
		{"group", desc.Group != nil && *desc.Group != ""},
		{"min", desc.Min != nil},
		{"max", desc.Max != nil},
	}

	for _, field := range required {
		if !field.set {
			return &MissingFieldError{Field: field.name}
		}
	}
	return nil
}

// resolveReplication validates an explicit replication factor or derives
// one from the database-role machine count.
func resolveReplication(explicit *int, dbVMCount int) (int, error) {
	if dbVMCount < 1 {
		return 0, &NoDatabaseRoleAssignedError{}
	}

	if explicit != nil {
		if *explicit < 1 {
			return 0, &RangeError{Field: "n", Value: *explicit, Constraint: "must be at least 1"}
		}
		if *explicit > dbVMCount {
			return 0, &ReplicationFactorTooHighError{Requested: *explicit, DatabaseVMs: dbVMCount}
		}
		return *explicit, nil
	}

	if dbVMCount > maxDerivedReplication {
		return maxDerivedReplication, nil
	}
	return dbVMCount, nil
}

// CredentialChecker is the slice of the cloud agent the resolver needs
// for collision checks.
type CredentialChecker interface {
	KeypairExists(ctx context.Context, name string) (bool, error)
	SecurityGroupExists(ctx context.Context, name string) (bool, error)
}

// CheckCredentials verifies the plan's keypair and security group names
// are unused in the target cloud account. The existence checks are
// delegated to the cloud agent; a hit surfaces as
// CredentialCollisionError.
func CheckCredentials(ctx context.Context, checker CredentialChecker, plan *Plan) error {
	exists, err := checker.KeypairExists(ctx, plan.Keyname)
	if err != nil {
		return fmt.Errorf("failed to check keypair %q: %w", plan.Keyname, err)
	}
	if exists {
		return &CredentialCollisionError{Kind: "keypair", Name: plan.Keyname}
	}

	exists, err = checker.SecurityGroupExists(ctx, plan.Group)
	if err != nil {
		return fmt.Errorf("failed to check security group %q: %w", plan.Group, err)
	}
	if exists {
		return &CredentialCollisionError{Kind: "security group", Name: plan.Group}
	}

	return nil
}
