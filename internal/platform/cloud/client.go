package cloud

import (
	"context"

	"github.com/paasboot/paasboot/internal/config"
)

// Host is the handle for an allocated VM.
type Host struct {
	InstanceID string
	PublicIP   string
	PrivateIP  string
}

// Agent is the cloud interface consumed by the resolver and the
// provisioning driver.
type Agent interface {
	// CountVMsWithRole returns how many live instances carry the role tag.
	CountVMsWithRole(ctx context.Context, role string) (int, error)

	// KeypairExists reports whether a keypair with the name exists in the
	// target account.
	KeypairExists(ctx context.Context, name string) (bool, error)

	// SecurityGroupExists reports whether a security group with the name
	// exists in the target account.
	SecurityGroupExists(ctx context.Context, name string) (bool, error)

	// AllocateVM starts one instance matching the plan, tags it with the
	// given roles, and waits until it is reachable via a public address.
	AllocateVM(ctx context.Context, plan *config.Plan, roles []string) (*Host, error)
}
