package engine

import "github.com/parley-sh/parley/observability"

// Session event types emitted during the conversation loop.
const (
	EventTurnStart    observability.EventType = "session.turn.start"
	EventBackendError observability.EventType = "session.backend.error"
	EventEmptyReply   observability.EventType = "session.reply.empty"
	EventReply        observability.EventType = "session.reply"
	EventGateResult   observability.EventType = "session.gate.result"
	EventExecuted     observability.EventType = "session.executed"
	EventTerminated   observability.EventType = "session.terminated"
)
