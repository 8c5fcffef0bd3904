// Package runner executes external tool invocations with bounded wall-clock
// duration and captured output.
//
// Every invocation is converted to a [Result]: expected failure modes
// (non-zero exit, timeout, unlaunchable binary) never surface as Go errors,
// so callers branch on Result.OK plus a human-readable reason instead of
// relying on error propagation for control flow.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/apkforge/apkforge/internal/event"
	"github.com/apkforge/apkforge/internal/logging"
)

// DefaultTimeout bounds a single external invocation.
const DefaultTimeout = 120 * time.Second

// Result is the outcome of one external invocation.
type Result struct {
	OK       bool   // True iff the process exited with status zero
	Stdout   string // Captured standard output
	Stderr   string // Captured standard error
	Reason   string // Human-readable failure reason; empty on success
	TimedOut bool   // True if the invocation exceeded its time bound
}

// Runner executes an external command described by an argument vector.
// The pipeline depends on this interface so tests can script tool behavior
// without spawning processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// ExecRunner runs commands via os/exec with a fixed per-invocation timeout.
type ExecRunner struct {
	timeout time.Duration
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates an ExecRunner. A zero or negative timeout falls back to
// DefaultTimeout. The bus may be nil; a nil logger discards output.
func New(timeout time.Duration, bus *event.Bus, logger *logging.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &ExecRunner{
		timeout: timeout,
		bus:     bus,
		logger:  logger,
	}
}

// Run executes the command and captures both output streams. It returns a
// failed Result (never panics, never returns an error) for every failure
// mode: non-zero exit, timeout, or inability to launch the process.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log := r.logger.WithTool(name)
	log.Debug("executing command", "argv", append([]string{name}, args...))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	res := Result{
		OK:     err == nil,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		// Success.
	case ctx.Err() == context.DeadlineExceeded:
		res.TimedOut = true
		res.Reason = fmt.Sprintf("timed out after %s", r.timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Reason = strings.TrimSpace(res.Stderr)
			if res.Reason == "" {
				res.Reason = fmt.Sprintf("exit status %d", exitErr.ExitCode())
			}
		} else {
			res.Reason = fmt.Sprintf("unexpected error: %v", err)
		}
	}

	if r.bus != nil {
		r.bus.Publish(event.NewCommandExecutedEvent(
			append([]string{name}, args...), res.OK, res.TimedOut, duration))
	}

	if res.OK {
		log.Debug("command succeeded", "duration", duration.String())
	} else {
		log.Debug("command failed", "duration", duration.String(), "reason", res.Reason)
	}
	if res.Stdout != "" {
		log.Debug("command stdout", "output", res.Stdout)
	}
	if res.Stderr != "" {
		log.Debug("command stderr", "output", res.Stderr)
	}

	return res
}
