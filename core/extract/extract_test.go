package extract_test

import (
	"testing"

	"github.com/parley-sh/parley/core/extract"
)

func TestExtract_FencedBlock(t *testing.T) {
	text := "Here:\n```powershell\nGet-Process\n```\nDone"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "Get-Process" {
		t.Errorf("got raw %q, want %q", got.Raw, "Get-Process")
	}
	if got.Source != extract.FencedBlock {
		t.Errorf("got source %v, want %v", got.Source, extract.FencedBlock)
	}
}

func TestExtract_FencedBlock_NoLanguageTag(t *testing.T) {
	text := "```\nls -la | head\n```"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "ls -la | head" {
		t.Errorf("got raw %q, want %q", got.Raw, "ls -la | head")
	}
	if got.Source != extract.FencedBlock {
		t.Errorf("got source %v, want %v", got.Source, extract.FencedBlock)
	}
}

func TestExtract_FencedBlock_FirstOfSeveral(t *testing.T) {
	text := "```sh\necho one\n```\nor\n```sh\necho two\n```"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "echo one" {
		t.Errorf("got raw %q, want %q", got.Raw, "echo one")
	}
}

func TestExtract_FencedBlock_Multiline(t *testing.T) {
	text := "Run this:\n```bash\ncd /tmp\nls | wc -l\n```"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "cd /tmp\nls | wc -l" {
		t.Errorf("got raw %q, want %q", got.Raw, "cd /tmp\nls | wc -l")
	}
}

func TestExtract_HeuristicLines_Pipe(t *testing.T) {
	text := "You can use Get-Process | Sort-Object CPU"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "You can use Get-Process | Sort-Object CPU" {
		t.Errorf("got raw %q, want the full line", got.Raw)
	}
	if got.Source != extract.HeuristicLines {
		t.Errorf("got source %v, want %v", got.Source, extract.HeuristicLines)
	}
}

func TestExtract_HeuristicLines_VerbNoun(t *testing.T) {
	text := "Try this:\nRestart-Service spooler\nIt restarts the print spooler."

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "Restart-Service spooler" {
		t.Errorf("got raw %q, want %q", got.Raw, "Restart-Service spooler")
	}
	if got.Source != extract.HeuristicLines {
		t.Errorf("got source %v, want %v", got.Source, extract.HeuristicLines)
	}
}

func TestExtract_HeuristicLines_JoinsMatches(t *testing.T) {
	text := "First:\nGet-Service\nThen:\nStop-Service spooler"

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	want := "Get-Service\nStop-Service spooler"
	if got.Raw != want {
		t.Errorf("got raw %q, want %q", got.Raw, want)
	}
}

func TestExtract_RawFallback(t *testing.T) {
	text := "I did that for you."

	got := extract.Extract(text)
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "I did that for you." {
		t.Errorf("got raw %q, want the trimmed whole text", got.Raw)
	}
	if got.Source != extract.RawFallback {
		t.Errorf("got source %v, want %v", got.Source, extract.RawFallback)
	}
}

func TestExtract_RawFallback_Trims(t *testing.T) {
	got := extract.Extract("  done  \n")
	if got == nil {
		t.Fatal("Extract returned nil, want a candidate")
	}
	if got.Raw != "done" {
		t.Errorf("got raw %q, want %q", got.Raw, "done")
	}
}

func TestExtract_Blank(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		if got := extract.Extract(text); got != nil {
			t.Errorf("Extract(%q) = %+v, want nil", text, got)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind extract.Kind
		want string
	}{
		{extract.FencedBlock, "fenced-block"},
		{extract.HeuristicLines, "heuristic-lines"},
		{extract.RawFallback, "raw-fallback"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
