package provision

import (
	"context"
	"fmt"
	"strings"
)

const (
	// hostsFile is the host's network-identity file.
	hostsFile = "/etc/hosts"

	// staleHostPrefix marks the host entry some cloud images arrive
	// with: the DHCP setup writes the instance hostname against
	// 127.0.1.1, which breaks services that resolve the hostname to the
	// loopback interface.
	staleHostPrefix = "127.0.1.1"

	// canonicalLoopback replaces the stale entry.
	canonicalLoopback = "127.0.0.1 localhost"

	// workspaceDir is the fixed working directory the runtime expects on
	// every cluster member.
	workspaceDir = "/var/paasboot"

	// Ownership and mode for workspaceDir. The provisioning account owns
	// it; everyone else may read and traverse.
	workspaceOwner = "root"
	workspaceGroup = "root"
	workspaceMode  = "0755"
)

// basePackages is the tooling every cluster member needs before the
// runtime is deployed: compilers, version control for source syncs, and
// the documentation toolchain.
var basePackages = []string{
	"build-essential",
	"git",
	"mercurial",
	"rsync",
	"python-docutils",
}

// Step is one named, idempotent unit of host mutation. Check evaluates
// the precondition against live host state: false means the effect is
// unnecessary and the step is skipped, which is not an error.
type Step interface {
	Name() string
	Check(ctx context.Context, runner Runner) (bool, error)
	Apply(ctx context.Context, runner Runner) error
}

// DefaultSteps returns the host-preparation sequence in execution order.
// Later steps may assume earlier steps completed.
func DefaultSteps() []Step {
	return []Step{
		hostCleanup{},
		workspaceDirectoryEnsure{},
		packageIndexRefresh{},
		dependencyInstall{packages: basePackages},
	}
}

// hostCleanup rewrites the stale 127.0.1.1 host entry to the canonical
// loopback mapping. Skipped when the entry is absent.
type hostCleanup struct{}

func (hostCleanup) Name() string { return "HostCleanup" }

func (hostCleanup) Check(ctx context.Context, runner Runner) (bool, error) {
	contents, err := runner.ReadFile(ctx, hostsFile)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", hostsFile, err)
	}

	for _, line := range strings.Split(contents, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), staleHostPrefix) {
			return true, nil
		}
	}
	return false, nil
}

func (hostCleanup) Apply(ctx context.Context, runner Runner) error {
	cmd := fmt.Sprintf(`sed -i 's/^127\.0\.1\.1.*/%s/' %s`, canonicalLoopback, hostsFile)
	if _, err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", hostsFile, err)
	}
	return nil
}

// workspaceDirectoryEnsure creates the fixed workspace directory with
// explicit mode and ownership. Creating an existing directory is a
// no-op; mode and ownership drift is corrected on every run.
type workspaceDirectoryEnsure struct{}

func (workspaceDirectoryEnsure) Name() string { return "WorkspaceDirectoryEnsure" }

func (workspaceDirectoryEnsure) Check(context.Context, Runner) (bool, error) {
	return true, nil
}

func (workspaceDirectoryEnsure) Apply(ctx context.Context, runner Runner) error {
	cmd := fmt.Sprintf("mkdir -p %[1]s && chmod %[2]s %[1]s && chown %[3]s:%[4]s %[1]s",
		workspaceDir, workspaceMode, workspaceOwner, workspaceGroup)
	if _, err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to ensure workspace directory %s: %w", workspaceDir, err)
	}
	return nil
}

// packageIndexRefresh refreshes the package index. It always runs:
// index staleness cannot be detected cheaply on the host, and an
// unnecessary refresh is harmless. DependencyInstall depends on it.
type packageIndexRefresh struct{}

func (packageIndexRefresh) Name() string { return "PackageIndexRefresh" }

func (packageIndexRefresh) Check(context.Context, Runner) (bool, error) {
	return true, nil
}

func (packageIndexRefresh) Apply(ctx context.Context, runner Runner) error {
	if _, err := runner.Run(ctx, "apt-get update -qq"); err != nil {
		return fmt.Errorf("failed to refresh package index: %w", err)
	}
	return nil
}

// dependencyInstall ensures each base package is present. One install
// per package, each independently idempotent: an already-installed
// package is untouched, and a failure names the package.
type dependencyInstall struct {
	packages []string
}

func (dependencyInstall) Name() string { return "DependencyInstall" }

func (dependencyInstall) Check(context.Context, Runner) (bool, error) {
	return true, nil
}

func (s dependencyInstall) Apply(ctx context.Context, runner Runner) error {
	for _, pkg := range s.packages {
		cmd := fmt.Sprintf("DEBIAN_FRONTEND=noninteractive apt-get install -y -qq %s", pkg)
		if _, err := runner.Run(ctx, cmd); err != nil {
			return fmt.Errorf("failed to install package %s: %w", pkg, err)
		}
	}
	return nil
}
