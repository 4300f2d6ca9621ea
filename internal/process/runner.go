package process

import (
	"context"
	"fmt"
	"time"
)

// Output is the result of a completed (or killed) invocation.
type Output struct {
	// Stdout is the full standard output text.
	Stdout string

	// Stderr is the full standard error text.
	Stderr string

	// ExitCode is the process exit code; -1 when killed.
	ExitCode int

	// TimedOut is true when the context deadline killed the process.
	TimedOut bool

	// Duration is the wall-clock runtime of the invocation.
	Duration time.Duration
}

// Success returns true for a clean zero exit.
func (o Output) Success() bool {
	return !o.TimedOut && o.ExitCode == 0
}

// Run executes argv in dir with input on stdin and waits for exit,
// bounded by ctx. When ctx expires the child is killed and the returned
// Output has TimedOut set. The error is non-nil only for launch
// failures; a non-zero exit is reported through Output.ExitCode.
func Run(ctx context.Context, argv []string, dir, input string) (Output, error) {
	p, err := New(argv, dir, input)
	if err != nil {
		return Output{}, err
	}

	if err := p.Start(); err != nil {
		return Output{}, fmt.Errorf("launch %s: %w", argv[0], err)
	}

	timedOut := false
	select {
	case <-p.Done():
	case <-ctx.Done():
		timedOut = true
		_ = p.Kill()
		// Wait for the reaper so the buffers are stable and the child
		// is fully released.
		<-p.Done()
	}

	return Output{
		Stdout:   p.StdoutText(),
		Stderr:   p.StderrText(),
		ExitCode: p.ExitCode(),
		TimedOut: timedOut,
		Duration: time.Since(p.Started),
	}, nil
}
