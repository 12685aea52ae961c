package cloud

import (
	"context"

	"github.com/paasboot/paasboot/internal/config"
)

// Mock is a func-field test double for Agent. Unset fields fall back to
// permissive defaults: no existing credentials, one database machine,
// allocation yielding a loopback host.
type Mock struct {
	CountVMsWithRoleFunc    func(ctx context.Context, role string) (int, error)
	KeypairExistsFunc       func(ctx context.Context, name string) (bool, error)
	SecurityGroupExistsFunc func(ctx context.Context, name string) (bool, error)
	AllocateVMFunc          func(ctx context.Context, plan *config.Plan, roles []string) (*Host, error)
}

// CountVMsWithRole implements Agent.
func (m *Mock) CountVMsWithRole(ctx context.Context, role string) (int, error) {
	if m.CountVMsWithRoleFunc != nil {
		return m.CountVMsWithRoleFunc(ctx, role)
	}
	return 1, nil
}

// KeypairExists implements Agent.
func (m *Mock) KeypairExists(ctx context.Context, name string) (bool, error) {
	if m.KeypairExistsFunc != nil {
		return m.KeypairExistsFunc(ctx, name)
	}
	return false, nil
}

// SecurityGroupExists implements Agent.
func (m *Mock) SecurityGroupExists(ctx context.Context, name string) (bool, error) {
	if m.SecurityGroupExistsFunc != nil {
		return m.SecurityGroupExistsFunc(ctx, name)
	}
	return false, nil
}

// AllocateVM implements Agent.
func (m *Mock) AllocateVM(ctx context.Context, plan *config.Plan, roles []string) (*Host, error) {
	if m.AllocateVMFunc != nil {
		return m.AllocateVMFunc(ctx, plan, roles)
	}
	return &Host{InstanceID: "i-mock", PublicIP: "127.0.0.1", PrivateIP: "10.0.0.1"}, nil
}
