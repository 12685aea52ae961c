package provision

import (
	"context"

	"github.com/paasboot/paasboot/internal/platform/ssh"
)

// Runner executes commands on a single host. Step preconditions and
// effects only ever touch the host through this interface, so tests
// inject a fake host instead of a live machine.
type Runner interface {
	// Run executes a shell command, returning combined output.
	Run(ctx context.Context, command string) (string, error)

	// ReadFile returns a remote file's contents.
	ReadFile(ctx context.Context, path string) (string, error)
}

// sshRunner adapts an SSH client to the Runner interface.
type sshRunner struct {
	client *ssh.Client
}

// NewSSHRunner wraps an SSH client as a Runner.
func NewSSHRunner(client *ssh.Client) Runner {
	return &sshRunner{client: client}
}

func (r *sshRunner) Run(ctx context.Context, command string) (string, error) {
	return r.client.Execute(ctx, command)
}

func (r *sshRunner) ReadFile(ctx context.Context, path string) (string, error) {
	return r.client.ReadFile(ctx, path)
}
