// Package engine implements the multi-turn text-chat state machine: user
// utterances go through intent classification, the chat backend, command
// extraction, and the confirmation gate, looping until the user signals
// exit.
//
// The engine is single-threaded and cooperative; at any instant exactly one
// blocking wait is outstanding (human input, backend response, or command
// execution). Each engine owns its session history and flags exclusively.
package engine

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/parley-sh/parley/backend"
	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/core/extract"
	"github.com/parley-sh/parley/core/intent"
	"github.com/parley-sh/parley/core/protocol"
	"github.com/parley-sh/parley/observability"
	"github.com/parley-sh/parley/render"
	"github.com/parley-sh/parley/session"
)

// DefaultSystemPrompt is the fixed preamble sent with every chat exchange.
const DefaultSystemPrompt = "You are a command-line assistant. When the user asks for something " +
	"that can be done in a shell, reply with a single command in a fenced code block, " +
	"followed by at most two sentences of explanation."

// State names the conversation loop's position. Initial is Listening;
// Terminated is terminal and never left.
type State int

const (
	Listening State = iota
	AwaitingConfirmation
	Executing
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting-confirmation"
	case Executing:
		return "executing"
	case Terminated:
		return "terminated"
	default:
		return "listening"
	}
}

// Option configures an Engine after defaults are applied.
type Option func(*Engine)

// WithSession overrides the default in-memory session.
func WithSession(s session.Session) Option {
	return func(e *Engine) { e.sess = s }
}

// WithConsole overrides the default stdout console.
func WithConsole(c *render.Console) Option {
	return func(e *Engine) { e.console = c }
}

// WithObserver overrides the default no-op observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithSystemPrompt overrides the default system preamble.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) { e.system = prompt }
}

// WithMode sets the confirmation mode. AutoExecute is never inferred; it
// only takes effect through this explicit option.
func WithMode(m confirm.Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithPolicy sets the ambiguous-token policy for interactive confirmation.
func WithPolicy(p confirm.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithTokenSource sets where interactive confirmation tokens come from.
// When unset, Run wires tokens to the same line source as utterances.
func WithTokenSource(ts confirm.TokenSource) Option {
	return func(e *Engine) { e.tokens = ts }
}

// WithExecutor sets the command execution collaborator.
func WithExecutor(x confirm.Executor) Option {
	return func(e *Engine) { e.exec = x }
}

// Engine is the conversational command-mediation state machine.
type Engine struct {
	chat     backend.Chat
	sess     session.Session
	console  *render.Console
	observer observability.Observer
	exec     confirm.Executor
	tokens   confirm.TokenSource
	mode     confirm.Mode
	policy   confirm.Policy
	system   string

	state        State
	awaitingMore bool
	turns        int
}

// New creates an Engine for the given chat backend. Defaults: fresh
// in-memory session, stdout console, no-op observer, interactive mode with
// the reinterpret policy.
func New(chat backend.Chat, opts ...Option) *Engine {
	e := &Engine{
		chat:     chat,
		sess:     session.NewMemorySession(),
		console:  render.NewConsole(os.Stdout),
		observer: observability.NoOpObserver{},
		system:   DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the loop's current position.
func (e *Engine) State() State {
	return e.state
}

// AwaitingMore reports whether the most recent assistant reply invited the
// user to continue. The flag is consumed by the next utterance.
func (e *Engine) AwaitingMore() bool {
	return e.awaitingMore
}

// Session exposes the engine's conversation history.
func (e *Engine) Session() session.Session {
	return e.sess
}

// trackingExecutor records the outcome of the most recent run so the engine
// can report success distinctly from the gate's failure report.
type trackingExecutor struct {
	inner confirm.Executor
	ran   bool
	err   error
}

func (t *trackingExecutor) Run(ctx context.Context, command string) error {
	t.ran = true
	t.err = t.inner.Run(ctx, command)
	return t.err
}

// Turn processes one user utterance, following reinterpreted confirmation
// tokens until the loop settles back into Listening or terminates. Returns
// the resulting state. After Terminated no backend call is ever made.
func (e *Engine) Turn(ctx context.Context, input string) State {
	if e.state == Terminated {
		return Terminated
	}

	u := input
	for {
		e.turns++
		e.observer.OnEvent(ctx, observability.NewEvent(
			EventTurnStart, observability.LevelVerbose, "engine.Turn",
			map[string]any{"turn": e.turns, "session": e.sess.ID()},
		))

		if intent.IsExit(u) {
			return e.terminate(ctx, "exit utterance")
		}

		// The awaiting-more flag is set only by the latest assistant reply
		// and consumed by exactly this utterance.
		if e.awaitingMore {
			e.awaitingMore = false
			if intent.IsNegative(u) {
				return e.terminate(ctx, "declined invitation to continue")
			}
		}

		e.sess.Append(protocol.NewMessage(protocol.RoleUser, u))

		reply, err := e.chat.Send(ctx, backend.ChatRequest{
			System:   e.system,
			Messages: e.sess.Messages(),
		})
		if err != nil {
			e.console.Error("backend error: " + err.Error())
			e.observer.OnEvent(ctx, observability.NewEvent(
				EventBackendError, observability.LevelWarning, "engine.Turn",
				map[string]any{"error": err.Error()},
			))
			e.state = Listening
			return e.state
		}
		if strings.TrimSpace(reply) == "" {
			e.console.Notice("the assistant had nothing to say")
			e.observer.OnEvent(ctx, observability.NewEvent(
				EventEmptyReply, observability.LevelVerbose, "engine.Turn", nil,
			))
			e.state = Listening
			return e.state
		}

		e.sess.Append(protocol.NewMessage(protocol.RoleAssistant, reply))
		e.console.Assistant(reply)
		e.awaitingMore = intent.IsInviteToContinue(reply)
		e.observer.OnEvent(ctx, observability.NewEvent(
			EventReply, observability.LevelVerbose, "engine.Turn",
			map[string]any{"length": len(reply), "awaiting_more": e.awaitingMore},
		))

		candidate := extract.Extract(reply)
		if candidate == nil {
			e.state = Listening
			return e.state
		}

		e.state = AwaitingConfirmation
		e.console.Candidate(candidate.Raw)

		tracker := &trackingExecutor{inner: e.executor()}
		gate := &confirm.Gate{
			Mode:   e.mode,
			Policy: e.policy,
			Tokens: e.tokens,
			Exec:   tracker,
			Report: e.console.Notice,
		}

		result := gate.Confirm(ctx, candidate)
		e.observer.OnEvent(ctx, observability.NewEvent(
			EventGateResult, observability.LevelVerbose, "engine.Turn",
			map[string]any{"outcome": result.Outcome.String(), "source": candidate.Source.String()},
		))

		switch result.Outcome {
		case confirm.Yes:
			e.state = Executing
			if tracker.ran && tracker.err == nil {
				e.console.Notice("command completed")
			}
			e.observer.OnEvent(ctx, observability.NewEvent(
				EventExecuted, observability.LevelInfo, "engine.Turn",
				map[string]any{"failed": tracker.err != nil},
			))
		case confirm.No:
			e.console.Notice("skipped")
		case confirm.Reinterpret:
			// The ambiguous token is a brand-new utterance; loop without
			// waiting for fresh input.
			u = result.Text
			e.state = Listening
			continue
		}

		e.state = Listening
		return e.state
	}
}

// Run drives the session from a line-oriented input source until the user
// signals exit or input ends. Confirmation tokens share the same source
// unless one was injected.
func (e *Engine) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	if e.tokens == nil {
		e.tokens = lineTokenSource(scanner, e.console)
	}

	for e.state != Terminated {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.console.Prompt()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		e.Turn(ctx, line)
	}

	return scanner.Err()
}

func (e *Engine) terminate(ctx context.Context, reason string) State {
	e.state = Terminated
	e.console.Notice("goodbye")
	e.observer.OnEvent(ctx, observability.NewEvent(
		EventTerminated, observability.LevelInfo, "engine.Turn",
		map[string]any{"reason": reason, "messages": e.sess.Len()},
	))
	return e.state
}

func (e *Engine) executor() confirm.Executor {
	if e.exec != nil {
		return e.exec
	}
	return noopExecutor{}
}

type noopExecutor struct{}

func (noopExecutor) Run(ctx context.Context, command string) error { return nil }

// lineTokenSource reads confirmation tokens from the same scanner that
// supplies utterances, echoing the gate's prompt first.
func lineTokenSource(scanner *bufio.Scanner, console *render.Console) confirm.TokenSource {
	return confirm.TokenFunc(func(ctx context.Context, prompt string) (string, error) {
		console.Ask(prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	})
}
