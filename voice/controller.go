// Package voice implements the voice-driven session variants. Each turn is
// a fresh single-exchange request built from one transcribed utterance;
// unlike the text engine, no history accumulates across turns. That trades
// multi-turn memory for reduced error propagation from transcription noise.
package voice

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/parley-sh/parley/backend"
	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/core/extract"
	"github.com/parley-sh/parley/core/intent"
	"github.com/parley-sh/parley/core/protocol"
	"github.com/parley-sh/parley/observability"
	"github.com/parley-sh/parley/record"
	"github.com/parley-sh/parley/render"
)

// DefaultCommandPrompt instructs the backend to answer with a bare command.
const DefaultCommandPrompt = "You are a voice-driven command assistant. Reply with only a single " +
	"executable shell command for the user's request, and nothing else."

const (
	defaultCaptureSeconds = 6
	// Spoken confirmations get a short capture so a missed window does not
	// stall the loop.
	spokenConfirmSeconds = 3
	typedConfirmWindow   = 5 * time.Second
)

// Variant selects how non-command notices are rendered.
type Variant int

const (
	// Full echoes notices through the speech backend as well as the console.
	Full Variant = iota
	// Basic echoes notices as console text only.
	Basic
)

func (v Variant) String() string {
	if v == Basic {
		return "basic"
	}
	return "full"
}

// Capturer records a fixed-length audio clip and returns its file path.
// Satisfied by record.Recorder.
type Capturer interface {
	Capture(ctx context.Context, seconds int) (string, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithVariant selects Full or Basic echoing. Default is Full.
func WithVariant(v Variant) Option {
	return func(c *Controller) { c.variant = v }
}

// WithSpeaker sets the speech output backend used by the Full variant.
func WithSpeaker(s backend.Speaker) Option {
	return func(c *Controller) { c.speaker = s }
}

// WithConsole overrides the default stdout console.
func WithConsole(con *render.Console) Option {
	return func(c *Controller) { c.console = con }
}

// WithObserver overrides the default no-op observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithExecutor sets the command execution collaborator.
func WithExecutor(x confirm.Executor) Option {
	return func(c *Controller) { c.exec = x }
}

// WithMode sets the confirmation mode. AutoExecute skips confirmation
// entirely; it is only ever set explicitly here.
func WithMode(m confirm.Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithPolicy sets the ambiguous-token policy.
func WithPolicy(p confirm.Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithCaptureSeconds sets the utterance capture window.
func WithCaptureSeconds(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.seconds = n
		}
	}
}

// WithSystemPrompt overrides the command-only preamble.
func WithSystemPrompt(prompt string) Option {
	return func(c *Controller) { c.system = prompt }
}

// WithVerboseTranscripts echoes every transcript before acting on it.
func WithVerboseTranscripts(v bool) Option {
	return func(c *Controller) { c.verbose = v }
}

// WithTokenSource overrides confirmation token solicitation, bypassing the
// typed-then-spoken flow. Mainly for tests.
func WithTokenSource(ts confirm.TokenSource) Option {
	return func(c *Controller) { c.tokens = ts }
}

// WithTypedInput sets the reader polled for typed confirmation tokens
// before falling back to spoken capture. Default is stdin.
func WithTypedInput(t *TypedInput) Option {
	return func(c *Controller) { c.typed = t }
}

// Controller drives voice turns: capture, transcribe, single-exchange chat,
// extraction, confirmation, execution.
type Controller struct {
	variant     Variant
	chat        backend.Chat
	transcriber backend.Transcriber
	capturer    Capturer
	speaker     backend.Speaker
	console     *render.Console
	observer    observability.Observer
	exec        confirm.Executor
	tokens      confirm.TokenSource
	typed       *TypedInput
	mode        confirm.Mode
	policy      confirm.Policy
	seconds     int
	verbose     bool
	system      string
}

// New creates a Controller over the given chat, transcription, and capture
// collaborators.
func New(chat backend.Chat, transcriber backend.Transcriber, capturer Capturer, opts ...Option) *Controller {
	c := &Controller{
		chat:        chat,
		transcriber: transcriber,
		capturer:    capturer,
		console:     render.NewConsole(os.Stdout),
		observer:    observability.NoOpObserver{},
		seconds:     defaultCaptureSeconds,
		system:      DefaultCommandPrompt,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil {
		c.tokens = confirm.TokenFunc(c.confirmToken)
	}
	return c
}

// Run loops voice turns until the user speaks an exit phrase or the capture
// prerequisite disappears. Transcription failures retry the turn; only a
// missing recorder ends the loop with an error.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		transcript, err := c.listen(ctx, c.seconds)
		if err != nil {
			if errors.Is(err, record.ErrRecorderMissing) {
				c.console.Error("audio capture is unavailable: " + err.Error())
				return err
			}
			c.console.Error("could not hear you: " + err.Error())
			continue
		}
		if transcript == "" {
			// Does not count as a completed turn.
			c.echo(ctx, "no speech detected")
			c.observer.OnEvent(ctx, observability.NewEvent(
				EventNoSpeech, observability.LevelVerbose, "voice.Run", nil,
			))
			continue
		}

		if c.verbose {
			c.console.Transcript(transcript)
		}
		c.observer.OnEvent(ctx, observability.NewEvent(
			EventTranscript, observability.LevelVerbose, "voice.Run",
			map[string]any{"length": len(transcript)},
		))

		if c.turn(ctx, transcript) {
			return nil
		}
	}
}

// turn handles one transcribed utterance, following reinterpreted
// confirmation tokens without waiting for a fresh capture window. Returns
// true when the session terminated.
func (c *Controller) turn(ctx context.Context, utterance string) bool {
	u := utterance
	for {
		if intent.IsExit(u) {
			c.echo(ctx, "goodbye")
			c.observer.OnEvent(ctx, observability.NewEvent(
				EventTerminated, observability.LevelInfo, "voice.turn", nil,
			))
			return true
		}

		reply, err := c.chat.Send(ctx, backend.ChatRequest{
			System:   c.system,
			Messages: protocol.InitMessages(protocol.RoleUser, u),
		})
		if err != nil {
			c.console.Error("backend error: " + err.Error())
			c.observer.OnEvent(ctx, observability.NewEvent(
				EventBackendError, observability.LevelWarning, "voice.turn",
				map[string]any{"error": err.Error()},
			))
			return false
		}
		if strings.TrimSpace(reply) == "" {
			c.echo(ctx, "the assistant had nothing to say")
			return false
		}

		candidate := extract.Extract(reply)
		c.console.Candidate(candidate.Raw)

		gate := &confirm.Gate{
			Mode:   c.mode,
			Policy: c.policy,
			Tokens: c.tokens,
			Exec:   c.executor(),
			Report: c.console.Notice,
		}

		result := gate.Confirm(ctx, candidate)
		c.observer.OnEvent(ctx, observability.NewEvent(
			EventGateResult, observability.LevelVerbose, "voice.turn",
			map[string]any{"outcome": result.Outcome.String()},
		))

		switch result.Outcome {
		case confirm.Yes:
			c.echo(ctx, "done")
			return false
		case confirm.No:
			c.echo(ctx, "skipped")
			return false
		case confirm.Reinterpret:
			u = result.Text
			continue
		}
	}
}

// listen captures a window of audio and transcribes it. The temp capture
// file is removed before returning.
func (c *Controller) listen(ctx context.Context, seconds int) (string, error) {
	c.observer.OnEvent(ctx, observability.NewEvent(
		EventCaptureStart, observability.LevelVerbose, "voice.listen",
		map[string]any{"seconds": seconds},
	))
	c.console.Notice("listening...")

	path, err := c.capturer.Capture(ctx, seconds)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	transcript, err := c.transcriber.Transcribe(ctx, backend.AudioRequest{
		Audio:   path,
		Seconds: seconds,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(transcript), nil
}

// confirmToken solicits one confirmation token: a typed line within the
// offered window first, then a short spoken capture.
func (c *Controller) confirmToken(ctx context.Context, prompt string) (string, error) {
	c.console.Ask(prompt)

	if c.typed == nil {
		c.typed = NewTypedInput(os.Stdin)
	}
	if line, ok := c.typed.Next(typedConfirmWindow); ok {
		return line, nil
	}

	token, err := c.listen(ctx, spokenConfirmSeconds)
	if err != nil {
		return "", err
	}
	return token, nil
}

// echo renders a notice: spoken and printed for Full, printed for Basic.
// Speech is best-effort; failures are ignored.
func (c *Controller) echo(ctx context.Context, text string) {
	c.console.Notice(text)
	if c.variant == Full && c.speaker != nil {
		_ = c.speaker.Speak(ctx, text)
	}
}

func (c *Controller) executor() confirm.Executor {
	if c.exec != nil {
		return c.exec
	}
	return noopExecutor{}
}

type noopExecutor struct{}

func (noopExecutor) Run(ctx context.Context, command string) error { return nil }
