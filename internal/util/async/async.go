// Package async provides helpers for running independent operations
// concurrently and collecting every outcome, not just the first failure.
package async

import (
	"context"
	"sync"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Outcome is the result of one task.
type Outcome struct {
	Name string
	Err  error
}

// RunAll executes all tasks concurrently and waits for every one to
// finish. Outcomes are returned in task order; a failing task never
// prevents the others from running to completion.
func RunAll(ctx context.Context, tasks []Task) []Outcome {
	outcomes := make([]Outcome, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = Outcome{Name: task.Name, Err: task.Func(ctx)}
		}()
	}
	wg.Wait()

	return outcomes
}

// FirstError returns the first non-nil error among the outcomes, in task
// order, or nil when every task succeeded.
func FirstError(outcomes []Outcome) error {
	for _, o := range outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}
