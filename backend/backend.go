// Package backend defines the pluggable provider surface the session loops
// depend on, and an explicit registry for wiring named providers. Transport
// details live in concrete implementations; the loops only see these
// interfaces.
package backend

import (
	"context"

	"github.com/parley-sh/parley/core/protocol"
)

// ChatRequest carries one chat exchange to a text-generation backend.
type ChatRequest struct {
	// System is the fixed preamble prepended to the conversation.
	System string
	// Messages is the ordered conversation history for this exchange.
	Messages []protocol.Message
	// Options are provider-specific knobs (temperature, etc.).
	Options map[string]any
}

// AudioRequest carries captured audio to a transcription backend.
type AudioRequest struct {
	// Audio is the path to the captured audio file.
	Audio string
	// Seconds is the capture window length that produced the audio.
	Seconds int
	// Device names the capture device, when the caller selected one.
	Device string
	// Options are provider-specific transcription knobs (language, etc.).
	Options map[string]any
}

// Chat is a text-generation backend. A nil-safe empty reply with a nil error
// is treated by callers as "no response" and recovered, never fatal.
type Chat interface {
	Send(ctx context.Context, req ChatRequest) (string, error)
}

// Transcriber converts captured audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, req AudioRequest) (string, error)
}

// Speaker renders text as audible speech. Best-effort side effect only.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Validator is optionally implemented by backends that can probe their own
// configuration (credentials present, endpoint reachable) before first use.
type Validator interface {
	Validate() error
}
