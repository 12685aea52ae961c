package provision

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paasboot/paasboot/internal/config"
)

func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		Step:              5 * time.Second,
		Allocate:          5 * time.Second,
		RetryMaxAttempts:  1,
		RetryInitialDelay: time.Millisecond,
	}
}

func quietOrchestrator(timeouts *config.Timeouts, opts ...Option) *Orchestrator {
	opts = append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)
	return NewOrchestrator(timeouts, opts...)
}

// blockingRunner blocks every command until released, then reports the
// context's error. ReadFile answers immediately so HostCleanup skips and
// the blocking command lands on a later step.
type blockingRunner struct {
	release chan struct{}
	started chan struct{}
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{
		release: make(chan struct{}),
		started: make(chan struct{}, 16),
	}
}

func (r *blockingRunner) Run(ctx context.Context, _ string) (string, error) {
	r.started <- struct{}{}
	select {
	case <-r.release:
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *blockingRunner) ReadFile(context.Context, string) (string, error) {
	return cleanHostsFile, nil
}

func TestProvision_FreshHost(t *testing.T) {
	host := newFakeHost(staleHostsFile)
	o := quietOrchestrator(testTimeouts())

	result, err := o.Provision(context.Background(), "10.0.0.1", host, &config.Plan{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"HostCleanup",
		"WorkspaceDirectoryEnsure",
		"PackageIndexRefresh",
		"DependencyInstall",
	}, result.Completed)
	assert.Empty(t, result.Skipped)
	assert.NotContains(t, host.etcHosts, staleHostPrefix)
	assert.Equal(t, 1, host.workspaceEnsures)
	assert.Equal(t, 1, host.indexRefreshes)
	for _, pkg := range basePackages {
		assert.True(t, host.installed[pkg], "package %s should be installed", pkg)
	}
}

func TestProvision_SecondRunConverges(t *testing.T) {
	host := newFakeHost(staleHostsFile)
	o := quietOrchestrator(testTimeouts())
	plan := &config.Plan{}

	_, err := o.Provision(context.Background(), "10.0.0.1", host, plan)
	require.NoError(t, err)
	hostsAfterFirst := host.etcHosts
	installedAfterFirst := len(host.installed)

	result, err := o.Provision(context.Background(), "10.0.0.1", host, plan)
	require.NoError(t, err)

	// The cleanup already happened, so the second run skips it and
	// leaves the hosts file byte-identical.
	assert.Equal(t, []string{"HostCleanup"}, result.Skipped)
	assert.Equal(t, []string{
		"WorkspaceDirectoryEnsure",
		"PackageIndexRefresh",
		"DependencyInstall",
	}, result.Completed)
	assert.Equal(t, hostsAfterFirst, host.etcHosts)
	assert.Equal(t, installedAfterFirst, len(host.installed))
	assert.Equal(t, 1, host.sedCommands())
}

func TestProvision_CleanHostsFileUntouched(t *testing.T) {
	host := newFakeHost(cleanHostsFile)
	o := quietOrchestrator(testTimeouts())

	result, err := o.Provision(context.Background(), "10.0.0.1", host, &config.Plan{})
	require.NoError(t, err)

	assert.Equal(t, []string{"HostCleanup"}, result.Skipped)
	assert.Equal(t, cleanHostsFile, host.etcHosts)
	assert.Zero(t, host.sedCommands())
}

func TestProvision_FailureHaltsSequence(t *testing.T) {
	host := newFakeHost(cleanHostsFile)
	host.failOn["apt-get update"] = errors.New("mirror unreachable")
	o := quietOrchestrator(testTimeouts())

	result, err := o.Provision(context.Background(), "10.0.0.1", host, &config.Plan{})
	require.Error(t, err)

	var execErr *StepExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "PackageIndexRefresh", execErr.Step)
	assert.Equal(t, "10.0.0.1", execErr.Host)

	assert.Equal(t, []string{"WorkspaceDirectoryEnsure"}, result.Completed)
	assert.Empty(t, host.installed, "no install runs after the failing step")
}

func TestProvision_PreconditionFailure(t *testing.T) {
	host := newFakeHost(staleHostsFile)
	host.readFileErr = errors.New("connection reset")
	o := quietOrchestrator(testTimeouts())

	_, err := o.Provision(context.Background(), "10.0.0.1", host, &config.Plan{})

	var checkErr *StepPreconditionCheckFailure
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, "HostCleanup", checkErr.Step)
	assert.ErrorIs(t, err, host.readFileErr)
}

func TestProvision_StepTimeout(t *testing.T) {
	runner := newBlockingRunner()
	timeouts := testTimeouts()
	timeouts.Step = 20 * time.Millisecond
	o := quietOrchestrator(timeouts)

	_, err := o.Provision(context.Background(), "10.0.0.1", runner, &config.Plan{})

	var timeoutErr *StepTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "WorkspaceDirectoryEnsure", timeoutErr.Step)
	assert.Equal(t, "10.0.0.1", timeoutErr.Host)
}

func TestProvision_HostBusy(t *testing.T) {
	runner := newBlockingRunner()
	o := quietOrchestrator(testTimeouts())

	done := make(chan error, 1)
	go func() {
		_, err := o.Provision(context.Background(), "10.0.0.1", runner, &config.Plan{})
		done <- err
	}()
	<-runner.started

	_, err := o.Provision(context.Background(), "10.0.0.1", runner, &config.Plan{})
	var busyErr *HostBusyError
	require.ErrorAs(t, err, &busyErr)
	assert.Equal(t, "10.0.0.1", busyErr.Host)

	// A different host is unaffected by the in-flight run.
	other := newFakeHost(cleanHostsFile)
	_, err = o.Provision(context.Background(), "10.0.0.2", other, &config.Plan{})
	require.NoError(t, err)

	close(runner.release)
	require.NoError(t, <-done)

	// The token is released once the run finishes.
	_, err = o.Provision(context.Background(), "10.0.0.1", newFakeHost(cleanHostsFile), &config.Plan{})
	require.NoError(t, err)
}

func TestProvision_CancelledBeforeFirstStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	host := newFakeHost(staleHostsFile)
	o := quietOrchestrator(testTimeouts())

	_, err := o.Provision(ctx, "10.0.0.1", host, &config.Plan{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, host.commands)
}

func TestProvisionAll_HostsAreIndependent(t *testing.T) {
	healthy := newFakeHost(staleHostsFile)
	broken := newFakeHost(cleanHostsFile)
	broken.failOn["apt-get install"] = errors.New("dpkg lock held")

	o := quietOrchestrator(testTimeouts())
	targets := []Target{
		{Host: "10.0.0.1", Runner: healthy},
		{Host: "10.0.0.2", Runner: broken},
	}

	results := o.ProvisionAll(context.Background(), targets, &config.Plan{})
	require.Len(t, results, 2)

	assert.Equal(t, "10.0.0.1", results[0].Host)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Completed, 4)

	assert.Equal(t, "10.0.0.2", results[1].Host)
	var execErr *StepExecutionError
	require.ErrorAs(t, results[1].Err, &execErr)
	assert.Equal(t, "DependencyInstall", execErr.Step)

	// The healthy host finished despite its neighbor's failure.
	assert.NotContains(t, healthy.etcHosts, staleHostPrefix)
}

func TestWithSteps_ReplacesSequence(t *testing.T) {
	o := quietOrchestrator(testTimeouts(), WithSteps([]Step{packageIndexRefresh{}}))
	host := newFakeHost(cleanHostsFile)

	result, err := o.Provision(context.Background(), "10.0.0.1", host, &config.Plan{})
	require.NoError(t, err)
	assert.Equal(t, []string{"PackageIndexRefresh"}, result.Completed)
	assert.Equal(t, 1, host.indexRefreshes)
}
