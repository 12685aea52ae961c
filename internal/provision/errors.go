package provision

import "fmt"

// StepPreconditionCheckFailure reports that a step's precondition could
// not be evaluated. Distinct from a false precondition, which skips the
// step without error.
type StepPreconditionCheckFailure struct {
	Step string
	Host string
	Err  error
}

func (e *StepPreconditionCheckFailure) Error() string {
	return fmt.Sprintf("step %s on host %s: precondition check failed: %v", e.Step, e.Host, e.Err)
}

func (e *StepPreconditionCheckFailure) Unwrap() error { return e.Err }

// StepExecutionError reports that a step's effect failed on a host.
type StepExecutionError struct {
	Step string
	Host string
	Err  error
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %s on host %s: %v", e.Step, e.Host, e.Err)
}

func (e *StepExecutionError) Unwrap() error { return e.Err }

// StepTimeoutError reports that a step exceeded its bounded execution
// time on a host.
type StepTimeoutError struct {
	Step string
	Host string
}

func (e *StepTimeoutError) Error() string {
	return fmt.Sprintf("step %s on host %s timed out", e.Step, e.Host)
}

// HostBusyError reports a provisioning run attempted against a host that
// already has one in flight. Concurrent runs on the same host are
// disallowed.
type HostBusyError struct {
	Host string
}

func (e *HostBusyError) Error() string {
	return fmt.Sprintf("host %s already has a provisioning run in flight", e.Host)
}
