// Package protocol defines the conversation primitives shared by the chat
// engine, the voice controller, and the pluggable backends.
package protocol

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation. Insertion order is
// causal turn order; histories are append-only until the session ends.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "list the running services")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// InitMessages creates a single-element message slice from a role and content.
// Convenience wrapper for the common pattern of starting a fresh single-turn
// exchange from one utterance.
func InitMessages(role Role, content string) []Message {
	return []Message{NewMessage(role, content)}
}
