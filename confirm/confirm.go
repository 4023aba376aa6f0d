// Package confirm implements the confirmation gate between an extracted
// command candidate and its execution. The gate's result is an explicit
// tagged value consumed by the owning loop; ambiguous tokens become
// Reinterpret results rather than parse errors, favoring conversational
// continuity over strict confirmation parsing.
package confirm

import (
	"context"
	"fmt"
	"strings"

	"github.com/parley-sh/parley/core/extract"
)

// Mode controls how the gate decides.
type Mode int

const (
	// Interactive solicits one confirmation token from the token source.
	Interactive Mode = iota
	// AutoExecute answers Yes without soliciting input. Only ever set
	// explicitly by the caller, never inferred.
	AutoExecute
	// DryRun reports the candidate and never answers Yes.
	DryRun
)

func (m Mode) String() string {
	switch m {
	case AutoExecute:
		return "auto-execute"
	case DryRun:
		return "dry-run"
	default:
		return "interactive"
	}
}

// Policy controls what happens with an ambiguous confirmation token.
type Policy int

const (
	// PolicyReinterpret treats the token as a brand-new user utterance,
	// re-entering the outer loop. This is the default.
	PolicyReinterpret Policy = iota
	// PolicyReprompt re-solicits until a recognizable token arrives,
	// answering No after repromptLimit attempts.
	PolicyReprompt
)

const repromptLimit = 3

// Outcome tags a confirmation result.
type Outcome int

const (
	Yes Outcome = iota
	No
	Reinterpret
)

func (o Outcome) String() string {
	switch o {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "reinterpret"
	}
}

// Result is the gate's decision. Text carries the original token when
// Outcome is Reinterpret.
type Result struct {
	Outcome Outcome
	Text    string
}

// TokenSource supplies one confirmation token per solicitation. Typed input
// and timed spoken capture both satisfy this.
type TokenSource interface {
	NextToken(ctx context.Context, prompt string) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context, prompt string) (string, error)

func (f TokenFunc) NextToken(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Executor runs a confirmed command. Failures are caught by the gate and
// reported, never propagated as fatal.
type Executor interface {
	Run(ctx context.Context, command string) error
}

var (
	yesTokens = map[string]bool{
		"y": true, "yes": true, "yeah": true, "sure": true,
		"run": true, "execute": true, "do it": true,
	}
	noTokens = map[string]bool{
		"n": true, "no": true, "nope": true, "skip": true, "cancel": true,
	}
)

// Gate decides execute/skip/reinterpret for command candidates.
type Gate struct {
	Mode   Mode
	Policy Policy
	Tokens TokenSource
	Exec   Executor
	// Report surfaces gate notices (dry-run candidates, execution errors)
	// to the user. Nil means notices are dropped.
	Report func(msg string)
}

func (g *Gate) report(format string, args ...any) {
	if g.Report != nil {
		g.Report(fmt.Sprintf(format, args...))
	}
}

// Confirm gates one candidate. On Yes outside DryRun the candidate is handed
// to the executor; execution errors are reported and the result stays Yes.
// Token-source failures are reported and answered as No.
func (g *Gate) Confirm(ctx context.Context, candidate *extract.Candidate) Result {
	switch g.Mode {
	case AutoExecute:
		g.execute(ctx, candidate)
		return Result{Outcome: Yes}
	case DryRun:
		g.report("dry-run: would execute:\n%s", candidate.Raw)
		return Result{Outcome: No}
	}

	for attempt := 0; ; attempt++ {
		token, err := g.Tokens.NextToken(ctx, "Run this command? [y/n] ")
		if err != nil {
			g.report("could not read confirmation: %v", err)
			return Result{Outcome: No}
		}

		normalized := strings.ToLower(strings.TrimSpace(token))
		switch {
		case yesTokens[normalized]:
			g.execute(ctx, candidate)
			return Result{Outcome: Yes}
		case noTokens[normalized]:
			return Result{Outcome: No}
		}

		if g.Policy == PolicyReprompt {
			if attempt+1 >= repromptLimit {
				g.report("no recognizable answer after %d attempts, skipping", repromptLimit)
				return Result{Outcome: No}
			}
			g.report("please answer yes or no")
			continue
		}

		return Result{Outcome: Reinterpret, Text: strings.TrimSpace(token)}
	}
}

func (g *Gate) execute(ctx context.Context, candidate *extract.Candidate) {
	if g.Exec == nil {
		return
	}
	if err := g.Exec.Run(ctx, candidate.Raw); err != nil {
		g.report("command failed: %v", err)
	}
}
