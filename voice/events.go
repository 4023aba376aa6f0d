package voice

import "github.com/parley-sh/parley/observability"

// Voice loop event types.
const (
	EventCaptureStart observability.EventType = "voice.capture.start"
	EventNoSpeech     observability.EventType = "voice.capture.empty"
	EventTranscript   observability.EventType = "voice.transcript"
	EventBackendError observability.EventType = "voice.backend.error"
	EventGateResult   observability.EventType = "voice.gate.result"
	EventTerminated   observability.EventType = "voice.terminated"
)
