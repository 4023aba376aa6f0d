// Package script replays a fixed prompt list through the conversation
// engine with confirmation forced to auto-execute. Runs are deterministic
// with no human in the loop, which makes them useful as reproducible test
// scenarios.
package script

import (
	"context"

	"github.com/parley-sh/parley/engine"
)

// Runner replays prompts through an engine's turn logic.
type Runner struct {
	engine           *engine.Engine
	prompts          []string
	simulateNegative bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithSimulateNegative injects a "no" immediately after a reply that
// invites the user to continue, exercising early termination without
// interactive input.
func WithSimulateNegative(v bool) Option {
	return func(r *Runner) { r.simulateNegative = v }
}

// New creates a Runner over an engine. The engine should be constructed
// with engine.WithMode(confirm.AutoExecute) or confirm.DryRun; the runner
// never solicits input.
func New(e *engine.Engine, prompts []string, opts ...Option) *Runner {
	r := &Runner{engine: e, prompts: prompts}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays the prompts in order, stopping early when the session
// terminates. Returns the number of prompts consumed.
func (r *Runner) Run(ctx context.Context) (int, error) {
	consumed := 0
	for _, prompt := range r.prompts {
		if err := ctx.Err(); err != nil {
			return consumed, err
		}
		if r.engine.State() == engine.Terminated {
			break
		}

		r.engine.Turn(ctx, prompt)
		consumed++

		if r.simulateNegative && r.engine.AwaitingMore() {
			r.engine.Turn(ctx, "no")
		}
	}
	return consumed, nil
}
