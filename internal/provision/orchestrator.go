package provision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/paasboot/paasboot/internal/config"
	"github.com/paasboot/paasboot/internal/util/async"
)

// Logger is the minimal logging surface the orchestrator needs.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Result reports the outcome of one host's provisioning run. Completed
// and Skipped list step names in execution order; Err is the failure
// that halted the sequence, nil on success.
type Result struct {
	Host      string
	Completed []string
	Skipped   []string
	Err       error
}

// Target pairs a host identity with the runner that reaches it.
type Target struct {
	Host   string
	Runner Runner
}

// Orchestrator drives the host-preparation sequence. One orchestrator
// serves any number of hosts; each host holds its own busy token, so
// runs on distinct hosts never contend.
type Orchestrator struct {
	steps    []Step
	timeouts *config.Timeouts
	logger   Logger

	// busy holds one token per host identity with a run in flight.
	busy sync.Map
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSteps replaces the default step sequence.
func WithSteps(steps []Step) Option {
	return func(o *Orchestrator) { o.steps = steps }
}

// WithLogger replaces the default standard-library logger.
func WithLogger(logger Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// NewOrchestrator creates an orchestrator running the default steps
// under the given timeouts.
func NewOrchestrator(timeouts *config.Timeouts, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		steps:    DefaultSteps(),
		timeouts: timeouts,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Provision runs the step sequence against one host. Steps execute
// strictly in order; the first failure halts the sequence and is
// attributed to its step. Cancellation is honored between steps, never
// mid-step, so a cancelled run always leaves the host in a state that a
// later full re-run can finish from.
func (o *Orchestrator) Provision(ctx context.Context, host string, runner Runner, plan *config.Plan) (*Result, error) {
	if _, inFlight := o.busy.LoadOrStore(host, struct{}{}); inFlight {
		return nil, &HostBusyError{Host: host}
	}
	defer o.busy.Delete(host)

	result := &Result{Host: host}
	start := time.Now()
	o.logger.Printf("[%s] provisioning with %d steps", host, len(o.steps))

	for i, step := range o.steps {
		if err := ctx.Err(); err != nil {
			result.Err = fmt.Errorf("provisioning cancelled before step %s: %w", step.Name(), err)
			runTotal.WithLabelValues(resultFailed).Inc()
			return result, result.Err
		}

		name := fmt.Sprintf("%s (%d/%d)", step.Name(), i+1, len(o.steps))
		if err := o.runStep(ctx, host, step, runner, result); err != nil {
			o.logger.Printf("[%s] %s failed: %v", host, name, err)
			result.Err = err
			runTotal.WithLabelValues(resultFailed).Inc()
			return result, err
		}

		if plan.Verbose {
			o.logger.Printf("[%s] %s done", host, name)
		}
	}

	o.logger.Printf("[%s] provisioning completed in %v (%d applied, %d skipped)",
		host, time.Since(start).Round(time.Millisecond), len(result.Completed), len(result.Skipped))
	runTotal.WithLabelValues(resultCompleted).Inc()
	return result, nil
}

// runStep evaluates one step's precondition and effect under the
// per-step timeout, recording the outcome on result and in the metrics.
func (o *Orchestrator) runStep(ctx context.Context, host string, step Step, runner Runner, result *Result) error {
	stepCtx, cancel := context.WithTimeout(ctx, o.timeouts.Step)
	defer cancel()

	start := time.Now()

	applicable, err := step.Check(stepCtx, runner)
	if err != nil {
		if timedOut(stepCtx, err) {
			stepTotal.WithLabelValues(step.Name(), resultTimeout).Inc()
			return &StepTimeoutError{Step: step.Name(), Host: host}
		}
		stepTotal.WithLabelValues(step.Name(), resultFailed).Inc()
		return &StepPreconditionCheckFailure{Step: step.Name(), Host: host, Err: err}
	}
	if !applicable {
		result.Skipped = append(result.Skipped, step.Name())
		stepTotal.WithLabelValues(step.Name(), resultSkipped).Inc()
		return nil
	}

	if err := step.Apply(stepCtx, runner); err != nil {
		if timedOut(stepCtx, err) {
			stepTotal.WithLabelValues(step.Name(), resultTimeout).Inc()
			return &StepTimeoutError{Step: step.Name(), Host: host}
		}
		stepTotal.WithLabelValues(step.Name(), resultFailed).Inc()
		return &StepExecutionError{Step: step.Name(), Host: host, Err: err}
	}

	result.Completed = append(result.Completed, step.Name())
	stepTotal.WithLabelValues(step.Name(), resultCompleted).Inc()
	stepDuration.WithLabelValues(step.Name()).Observe(time.Since(start).Seconds())
	return nil
}

// ProvisionAll runs the sequence against every target in parallel.
// Hosts are independent: a failure on one never blocks the others.
// Results are returned in target order.
func (o *Orchestrator) ProvisionAll(ctx context.Context, targets []Target, plan *config.Plan) []Result {
	results := make([]Result, len(targets))

	tasks := make([]async.Task, len(targets))
	for i, target := range targets {
		tasks[i] = async.Task{
			Name: target.Host,
			Func: func(ctx context.Context) error {
				result, err := o.Provision(ctx, target.Host, target.Runner, plan)
				if result == nil {
					result = &Result{Host: target.Host, Err: err}
				}
				results[i] = *result
				return err
			},
		}
	}

	async.RunAll(ctx, tasks)
	return results
}

// timedOut distinguishes a step that exceeded its bound from a step that
// failed on its own.
func timedOut(stepCtx context.Context, err error) bool {
	return errors.Is(stepCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded)
}
