package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/parley-sh/parley/core/protocol"
)

type memorySession struct {
	id       string
	messages []protocol.Message
	mu       sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice.
// The session is assigned a unique UUIDv7 identifier.
func NewMemorySession() Session {
	return &memorySession{
		id: uuid.Must(uuid.NewV7()).String(),
	}
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Append(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *memorySession) Messages() []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

func (s *memorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
