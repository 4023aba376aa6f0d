package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/parley-sh/parley/observability"
)

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}
	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{observability.LevelVerbose, "DEBUG"},
		{observability.LevelInfo, "INFO"},
		{observability.LevelWarning, "WARN"},
		{observability.LevelError, "ERROR"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestSlogObserver_OnEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.NewEvent(
		"session.turn.start",
		observability.LevelInfo,
		"engine.Turn",
		map[string]any{"turn": 1},
	))

	out := buf.String()
	if !strings.Contains(out, "session.turn.start") {
		t.Errorf("log output missing event type: %s", out)
	}
	if !strings.Contains(out, "source=engine.Turn") {
		t.Errorf("log output missing source attr: %s", out)
	}
	if !strings.Contains(out, "turn=1") {
		t.Errorf("log output missing data attr: %s", out)
	}
}

type countingObserver struct {
	events []observability.Event
}

func (c *countingObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func TestMultiObserver_FansOut(t *testing.T) {
	a := &countingObserver{}
	b := &countingObserver{}
	multi := observability.NewMultiObserver(a, nil, b)

	multi.OnEvent(context.Background(), observability.NewEvent(
		"gate.result", observability.LevelVerbose, "test", nil,
	))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("got %d and %d events, want 1 and 1", len(a.events), len(b.events))
	}
}
