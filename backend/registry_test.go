package backend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/parley-sh/parley/backend"
)

type stubChat struct {
	reply       string
	validateErr error
	validated   int
	built       bool
}

func (s *stubChat) Send(ctx context.Context, req backend.ChatRequest) (string, error) {
	return s.reply, nil
}

func (s *stubChat) Validate() error {
	s.validated++
	return s.validateErr
}

type stubSpeaker struct{}

func (stubSpeaker) Speak(ctx context.Context, text string) error { return nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := backend.NewRegistry()
	stub := &stubChat{reply: "hello"}

	if err := r.Register("main", backend.KindChat, func() (any, error) {
		stub.built = true
		return stub, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if stub.built {
		t.Error("backend was built before first use")
	}

	c, err := r.Chat("main")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !stub.built {
		t.Error("backend was not built on first use")
	}

	reply, err := c.Send(context.Background(), backend.ChatRequest{})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "hello" {
		t.Errorf("got reply %q, want %q", reply, "hello")
	}
}

func TestRegistry_LazyBuildOnce(t *testing.T) {
	r := backend.NewRegistry()
	builds := 0
	if err := r.Register("main", backend.KindChat, func() (any, error) {
		builds++
		return &stubChat{}, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for range 3 {
		if _, err := r.Chat("main"); err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
	}
	if builds != 1 {
		t.Errorf("factory ran %d times, want 1", builds)
	}
}

func TestRegistry_ValidateOnBuild(t *testing.T) {
	r := backend.NewRegistry()
	stub := &stubChat{validateErr: errors.New("no api key")}
	if err := r.Register("main", backend.KindChat, func() (any, error) {
		return stub, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := r.Chat("main"); err == nil {
		t.Fatal("Chat should fail when validation fails")
	}
	if stub.validated != 1 {
		t.Errorf("Validate ran %d times, want 1", stub.validated)
	}
}

func TestRegistry_EmptyName(t *testing.T) {
	r := backend.NewRegistry()
	err := r.Register("", backend.KindChat, func() (any, error) { return nil, nil })
	if !errors.Is(err, backend.ErrEmptyName) {
		t.Errorf("got %v, want ErrEmptyName", err)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := backend.NewRegistry()
	f := func() (any, error) { return &stubChat{}, nil }

	if err := r.Register("main", backend.KindChat, f); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register("main", backend.KindChat, f); !errors.Is(err, backend.ErrExists) {
		t.Errorf("got %v, want ErrExists", err)
	}
}

func TestRegistry_NotFound(t *testing.T) {
	r := backend.NewRegistry()
	if _, err := r.Chat("ghost"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if err := r.Unregister("ghost"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("Unregister: got %v, want ErrNotFound", err)
	}
}

func TestRegistry_KindMismatch(t *testing.T) {
	r := backend.NewRegistry()
	if err := r.Register("say", backend.KindSpeaker, func() (any, error) {
		return stubSpeaker{}, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := r.Chat("say"); !errors.Is(err, backend.ErrKindMismatch) {
		t.Errorf("got %v, want ErrKindMismatch", err)
	}
}

func TestRegistry_Replace_InvalidatesCache(t *testing.T) {
	r := backend.NewRegistry()
	if err := r.Register("main", backend.KindChat, func() (any, error) {
		return &stubChat{reply: "old"}, nil
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := r.Chat("main"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if err := r.Replace("main", backend.KindChat, func() (any, error) {
		return &stubChat{reply: "new"}, nil
	}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	c, err := r.Chat("main")
	if err != nil {
		t.Fatalf("Chat after Replace failed: %v", err)
	}
	reply, _ := c.Send(context.Background(), backend.ChatRequest{})
	if reply != "new" {
		t.Errorf("got reply %q, want %q", reply, "new")
	}
}

func TestRegistry_List_Sorted(t *testing.T) {
	r := backend.NewRegistry()
	f := func() (any, error) { return &stubChat{}, nil }
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(name, backend.KindChat, f); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	infos := r.List()
	want := []string{"alpha", "mid", "zeta"}
	if len(infos) != len(want) {
		t.Fatalf("got %d entries, want %d", len(infos), len(want))
	}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, info.Name, want[i])
		}
	}
}
