package script_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/parley-sh/parley/backend"
	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/engine"
	"github.com/parley-sh/parley/render"
	"github.com/parley-sh/parley/script"
)

type scriptedChat struct {
	replies  []string
	requests []backend.ChatRequest
}

func (c *scriptedChat) Send(ctx context.Context, req backend.ChatRequest) (string, error) {
	c.requests = append(c.requests, req)
	i := len(c.requests) - 1
	if i < len(c.replies) {
		return c.replies[i], nil
	}
	return "", nil
}

type recordingExecutor struct {
	commands []string
}

func (e *recordingExecutor) Run(ctx context.Context, command string) error {
	e.commands = append(e.commands, command)
	return nil
}

func newEngine(chat backend.Chat, exec confirm.Executor) *engine.Engine {
	return engine.New(chat,
		engine.WithConsole(render.NewConsole(&bytes.Buffer{})),
		engine.WithMode(confirm.AutoExecute),
		engine.WithExecutor(exec),
	)
}

func TestRun_ReplaysAllPrompts(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"```sh\nuptime\n```",
		"```sh\ndf -h\n```",
	}}
	exec := &recordingExecutor{}
	r := script.New(newEngine(chat, exec), []string{"how long up", "disk space"})

	consumed, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consumed != 2 {
		t.Errorf("consumed %d prompts, want 2", consumed)
	}
	if len(exec.commands) != 2 {
		t.Errorf("executed %d commands, want 2 (auto-execute, no human input)", len(exec.commands))
	}
}

func TestRun_StopsAtExitPrompt(t *testing.T) {
	chat := &scriptedChat{replies: []string{"```sh\nls\n```"}}
	exec := &recordingExecutor{}
	r := script.New(newEngine(chat, exec), []string{"list files", "exit", "never sent"})

	consumed, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consumed != 2 {
		t.Errorf("consumed %d prompts, want 2 (exit stops the replay)", consumed)
	}
	if len(chat.requests) != 1 {
		t.Errorf("backend called %d times, want 1", len(chat.requests))
	}
}

func TestRun_SimulateNegative_TerminatesEarly(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Done. Anything else I can help with?",
	}}
	exec := &recordingExecutor{}
	e := newEngine(chat, exec)
	r := script.New(e, []string{"first", "second"}, script.WithSimulateNegative(true))

	consumed, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consumed != 1 {
		t.Errorf("consumed %d prompts, want 1 (simulated negative terminates)", consumed)
	}
	if e.State() != engine.Terminated {
		t.Errorf("got state %v, want Terminated", e.State())
	}
	if len(chat.requests) != 1 {
		t.Errorf("backend called %d times, want 1 (the simulated negative makes no call)", len(chat.requests))
	}
}

func TestRun_WithoutSimulateNegative_KeepsGoing(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Done. Anything else I can help with?",
		"```sh\nls\n```",
	}}
	exec := &recordingExecutor{}
	r := script.New(newEngine(chat, exec), []string{"first", "second"})

	consumed, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if consumed != 2 {
		t.Errorf("consumed %d prompts, want 2", consumed)
	}
	if len(chat.requests) != 2 {
		t.Errorf("backend called %d times, want 2", len(chat.requests))
	}
}
