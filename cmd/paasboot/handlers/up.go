// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/layout"
	"github.com/paasboot/paasboot/internal/platform/cloud"
	"github.com/paasboot/paasboot/internal/platform/ssh"
	"github.com/paasboot/paasboot/internal/provision"
	"github.com/paasboot/paasboot/internal/util/async"
)

// Provisioner interface for testing - matches provision.Orchestrator.
type Provisioner interface {
	ProvisionAll(ctx context.Context, targets []provision.Target, plan *config.Plan) []provision.Result
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadTimeouts reads the timeout configuration from the environment.
	loadTimeouts = config.LoadTimeouts

	// newCloudAgent creates the cloud agent for the plan's infrastructure.
	newCloudAgent = func(ctx context.Context, plan *config.Plan) (cloud.Agent, error) {
		if plan.Infrastructure == config.InfraEucalyptus {
			return cloud.NewEucalyptusAgent(ctx,
				os.Getenv("EC2_URL"),
				os.Getenv("AWS_ACCESS_KEY_ID"),
				os.Getenv("AWS_SECRET_ACCESS_KEY"))
		}
		return cloud.NewEC2Agent(ctx)
	}

	// readKeyFile reads the SSH private key.
	readKeyFile = os.ReadFile

	// newRunner builds the SSH runner for one allocated host.
	newRunner = func(host *cloud.Host, privateKey []byte) (provision.Runner, error) {
		client, err := ssh.NewClient(&ssh.Config{
			Host:       host.PublicIP,
			PrivateKey: privateKey,
		})
		if err != nil {
			return nil, err
		}
		return provision.NewSSHRunner(client), nil
	}

	// newProvisioner creates the provisioning orchestrator.
	newProvisioner = func(timeouts *config.Timeouts) Provisioner {
		return provision.NewOrchestrator(timeouts)
	}
)

// Up bootstraps the cluster described by the descriptor.
//
// This function orchestrates the complete bootstrap workflow:
//  1. Loads the descriptor and resolves it into a validated plan
//  2. Verifies the keypair and security group names are unused in the
//     cloud account (fail-fast, before anything is launched)
//  3. Allocates the initial machines in parallel, each tagged with the
//     roles the placement assigns it
//  4. Prepares every machine over SSH, hosts in parallel, steps in order
//
// Resolution and credential checks run before any allocation so a bad
// descriptor never costs a single machine-hour.
func Up(ctx context.Context, configPath, keyFile string) error {
	plan, l, err := resolveFromFile(configPath)
	if err != nil {
		return err
	}

	privateKey, err := readKeyFile(keyFile)
	if err != nil {
		return fmt.Errorf("failed to read SSH key %s: %w", keyFile, err)
	}

	agent, err := newCloudAgent(ctx, plan)
	if err != nil {
		return fmt.Errorf("failed to initialize cloud agent: %w", err)
	}

	if err := config.CheckCredentials(ctx, agent, plan); err != nil {
		return err
	}

	timeouts := loadTimeouts()

	log.Printf("Allocating %d machine(s) on %s", plan.Min, plan.Infrastructure)
	hosts, err := allocateInitialMachines(ctx, agent, plan, l, timeouts)
	if err != nil {
		return err
	}

	targets := make([]provision.Target, len(hosts))
	for i, host := range hosts {
		runner, err := newRunner(host, privateKey)
		if err != nil {
			return fmt.Errorf("failed to build runner for %s: %w", host.PublicIP, err)
		}
		targets[i] = provision.Target{Host: host.PublicIP, Runner: runner}
	}

	log.Printf("Preparing %d host(s)", len(targets))
	results := newProvisioner(timeouts).ProvisionAll(ctx, targets, plan)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			log.Printf("host %s failed: %v", result.Host, result.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("provisioning failed on %d of %d host(s)", failed, len(results))
	}

	printUpSuccess(hosts, plan)
	return nil
}

// allocateInitialMachines launches the plan's initial machines in
// parallel, one per placement slot, each tagged with its roles. All
// allocations run to completion so a partial failure reports every
// machine that did come up.
func allocateInitialMachines(ctx context.Context, agent cloud.Agent, plan *config.Plan, l *layout.Layout, timeouts *config.Timeouts) ([]*cloud.Host, error) {
	hosts := make([]*cloud.Host, plan.Min)

	tasks := make([]async.Task, plan.Min)
	for i := 0; i < plan.Min; i++ {
		node := l.Nodes[i]
		tasks[i] = async.Task{
			Name: fmt.Sprintf("node %d", node.Index),
			Func: func(ctx context.Context) error {
				allocCtx, cancel := context.WithTimeout(ctx, timeouts.Allocate)
				defer cancel()

				host, err := agent.AllocateVM(allocCtx, plan, rolesToStrings(node.Roles))
				if err != nil {
					return fmt.Errorf("node %d: %w", node.Index, err)
				}
				hosts[i] = host
				log.Printf("node %d allocated: %s (%s)", node.Index, host.InstanceID, host.PublicIP)
				return nil
			},
		}
	}

	outcomes := async.RunAll(ctx, tasks)
	if err := async.FirstError(outcomes); err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	return hosts, nil
}

func rolesToStrings(roles []layout.Role) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

// printUpSuccess outputs completion message and next steps for the user.
func printUpSuccess(hosts []*cloud.Host, plan *config.Plan) {
	fmt.Printf("\nCluster bootstrapped!\n\n")
	for i, host := range hosts {
		fmt.Printf("  node %-3d %s (%s)\n", i, host.PublicIP, host.InstanceID)
	}
	fmt.Printf("\nHead node: %s\n", hosts[0].PublicIP)
	fmt.Printf("Datastore: %s, replication factor %d\n", plan.Table, plan.ReplicationFactor)
	if plan.DynamicAppServers() {
		fmt.Println("App servers: managed by the autoscaler")
	} else {
		fmt.Printf("App servers: %d per application\n", *plan.StaticAppServers)
	}
}
