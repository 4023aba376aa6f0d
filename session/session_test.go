package session_test

import (
	"sync"
	"testing"

	"github.com/parley-sh/parley/core/protocol"
	"github.com/parley-sh/parley/session"
)

func TestNewMemorySession(t *testing.T) {
	s := session.NewMemorySession()

	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if s.Len() != 0 {
		t.Errorf("new session should have 0 messages, got %d", s.Len())
	}
}

func TestSession_ID_Unique(t *testing.T) {
	s1 := session.NewMemorySession()
	s2 := session.NewMemorySession()

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSession_Append_Order(t *testing.T) {
	s := session.NewMemorySession()

	roles := []protocol.Role{
		protocol.RoleSystem,
		protocol.RoleUser,
		protocol.RoleAssistant,
	}
	for _, role := range roles {
		s.Append(protocol.NewMessage(role, string(role)))
	}

	msgs := s.Messages()
	if len(msgs) != len(roles) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(roles))
	}
	for i, msg := range msgs {
		if msg.Role != roles[i] {
			t.Errorf("message %d: got role %q, want %q", i, msg.Role, roles[i])
		}
	}
}

func TestSession_Messages_DefensiveCopy(t *testing.T) {
	s := session.NewMemorySession()
	s.Append(protocol.NewMessage(protocol.RoleUser, "hello"))
	s.Append(protocol.NewMessage(protocol.RoleAssistant, "hi"))

	msgs := s.Messages()
	msgs[0] = protocol.NewMessage(protocol.RoleSystem, "tampered")
	msgs = append(msgs, protocol.NewMessage(protocol.RoleUser, "extra"))
	_ = msgs

	original := s.Messages()
	if len(original) != 2 {
		t.Fatalf("got %d messages, want 2", len(original))
	}
	if original[0].Role != protocol.RoleUser {
		t.Errorf("first message role was mutated: got %q, want %q", original[0].Role, protocol.RoleUser)
	}
}

func TestSession_Clear_ThenAppend(t *testing.T) {
	s := session.NewMemorySession()
	s.Append(protocol.NewMessage(protocol.RoleUser, "first"))
	s.Clear()
	s.Append(protocol.NewMessage(protocol.RoleUser, "second"))

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Content != "second" {
		t.Errorf("got content %q, want %q", msgs[0].Content, "second")
	}
}

func TestSession_Concurrent_Append(t *testing.T) {
	s := session.NewMemorySession()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.Append(protocol.NewMessage(protocol.RoleUser, "msg"))
		}()
	}
	wg.Wait()

	if s.Len() != n {
		t.Errorf("got %d messages, want %d", s.Len(), n)
	}
}
