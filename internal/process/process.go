package process

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for process operations.
var (
	// ErrEmptyCommand is returned when no executable was given.
	ErrEmptyCommand = errors.New("empty command")

	// ErrNotStarted is returned when operations require a started process.
	ErrNotStarted = errors.New("process not started")

	// ErrAlreadyStarted is returned when starting a process twice.
	ErrAlreadyStarted = errors.New("process already started")
)

// State represents the state of a process.
type State int

const (
	// StateCreated indicates the process has been created but not started.
	StateCreated State = iota
	// StateRunning indicates the process is currently running.
	StateRunning
	// StateExited indicates the process has exited normally or with an error.
	StateExited
	// StateKilled indicates the process was killed by a signal.
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Process is a managed formatter child process.
//
// The full input is handed over up front; stdout and stderr are collected
// into buffers that become readable once the process has exited. Exit
// state is tracked asynchronously. Safe for concurrent use.
type Process struct {
	// ID uniquely identifies this invocation.
	ID string

	// Cmd is the underlying exec.Cmd.
	Cmd *exec.Cmd

	// Started is the time the process was started.
	Started time.Time

	stdout bytes.Buffer
	stderr bytes.Buffer

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error

	waitOnce sync.Once
}

// New creates a managed process for the given argv, run in dir, with
// input written to the child's stdin. The stream is closed at
// end-of-input. Each invocation gets a fresh unique ID.
func New(argv []string, dir, input string) (*Process, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	hideWindow(cmd)

	p := &Process{
		ID:   uuid.New().String(),
		Cmd:  cmd,
		done: make(chan struct{}),
	}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1) // -1 indicates not exited

	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &p.stdout
	cmd.Stderr = &p.stderr

	return p, nil
}

// Start launches the process and begins exit tracking.
func (p *Process) Start() error {
	if p.State() != StateCreated {
		return ErrAlreadyStarted
	}

	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	p.Started = time.Now()
	p.state.Store(int32(StateRunning))

	go p.waitLoop()

	return nil
}

// waitLoop waits for the process to exit and updates state.
// Wait also reaps the internal I/O copy goroutines, so the stdout and
// stderr buffers are stable once done is closed.
func (p *Process) waitLoop() {
	p.waitOnce.Do(func() {
		err := p.Cmd.Wait()

		p.mu.Lock()
		p.exitErr = err
		p.mu.Unlock()

		exitCode := 0
		state := StateExited

		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
				if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
					state = StateKilled
				}
			} else {
				exitCode = -1
			}
		}

		p.exitCode.Store(int32(exitCode))
		p.state.Store(int32(state))
		close(p.done)
	})
}

// State returns the current process state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the process exit code, or -1 before exit.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns any error from waiting on the process.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done returns a channel that is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning returns true if the process is currently running.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// StdoutText returns the collected standard output.
// Only valid after Done is closed.
func (p *Process) StdoutText() string {
	return p.stdout.String()
}

// StderrText returns the collected standard error output.
// Only valid after Done is closed.
func (p *Process) StderrText() string {
	return p.stderr.String()
}

// Kill forcibly terminates the process.
func (p *Process) Kill() error {
	if !p.IsRunning() {
		return ErrNotStarted
	}
	if p.Cmd.Process == nil {
		return ErrNotStarted
	}
	return p.Cmd.Process.Kill()
}
