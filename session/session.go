// Package session manages the conversation history owned by a single chat
// session invocation. Histories live in memory only and are discarded when
// the session ends; nothing here touches disk.
package session

import (
	"github.com/parley-sh/parley/core/protocol"
)

// Session holds an ordered, append-only sequence of conversation messages.
// Implementations must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Append adds a message to the conversation history.
	Append(msg protocol.Message)
	// Messages returns a defensive copy of the conversation history.
	Messages() []protocol.Message
	// Len returns the number of messages in the history.
	Len() int
	// Clear resets the conversation history.
	Clear()
}
