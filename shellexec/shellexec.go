// Package shellexec runs confirmed command candidates through an embedded
// POSIX shell interpreter, streaming output to the caller's writers.
package shellexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const defaultTimeout = 2 * time.Minute

// Runner executes command text synchronously. The controlling loop blocks
// until the run returns; there is no background execution.
type Runner struct {
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds each run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithOutput redirects the run's stdout and stderr streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner streaming to the process's stdout/stderr by default.
func New(opts ...Option) *Runner {
	r := &Runner{
		timeout: defaultTimeout,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run parses and executes the command text. Parse failures and non-zero
// exits come back as errors for the caller to report; they are never fatal
// to the hosting session.
func (r *Runner) Run(ctx context.Context, command string) error {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}

	shell, err := interp.New(
		interp.StdIO(nil, r.stdout, r.stderr),
		interp.Interactive(false),
	)
	if err != nil {
		return fmt.Errorf("create interpreter: %w", err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := shell.Run(ctx, file); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return fmt.Errorf("command exited with status %d", status)
		}
		return fmt.Errorf("run command: %w", err)
	}
	return nil
}
