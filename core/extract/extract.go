// Package extract recovers a candidate executable command from the free-form
// prose a chat backend returns. Model output is not a typed response format,
// so the extractor prefers attempting a plausible line over silently dropping
// a valid suggestion.
package extract

import (
	"regexp"
	"strings"
)

// Kind records which extraction rule produced a candidate.
type Kind int

const (
	// FencedBlock means the candidate came from a triple-delimited code block.
	FencedBlock Kind = iota
	// HeuristicLines means the candidate was assembled from lines that look
	// like commands (pipes or verb-noun invocations).
	HeuristicLines
	// RawFallback means no structure was found and the whole reply is the
	// candidate.
	RawFallback
)

func (k Kind) String() string {
	switch k {
	case FencedBlock:
		return "fenced-block"
	case HeuristicLines:
		return "heuristic-lines"
	default:
		return "raw-fallback"
	}
}

// Candidate is text recovered from a backend reply, believed directly
// executable.
type Candidate struct {
	Raw    string
	Source Kind
}

// fencedRe finds the first triple-backtick block, optional language tag,
// non-greedy across newlines.
var fencedRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\r?\n?(.*?)```")

// verbs are the imperative command verbs the line heuristic recognizes in
// <Verb>-<Noun> position.
var verbs = []string{
	"Get", "Set", "New", "Remove", "Start", "Stop", "Restart", "Invoke",
	"Enable", "Disable", "Select", "Sort", "Where", "ForEach", "Import",
	"Export", "Test", "Measure", "Write", "Add", "Clear", "Copy", "Move",
	"Rename", "Join", "Split", "Out", "Format",
}

var verbNounRe = regexp.MustCompile(`(?i)\b(` + strings.Join(verbs, "|") + `)-[A-Za-z]\w*`)

// Extract recovers a candidate command from a backend reply. Rules apply in
// priority order: fenced block, then command-looking lines, then the whole
// trimmed reply. Returns nil when the reply is blank.
func Extract(text string) *Candidate {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if m := fencedRe.FindStringSubmatch(text); m != nil {
		if inner := strings.TrimSpace(m[1]); inner != "" {
			return &Candidate{Raw: inner, Source: FencedBlock}
		}
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "|") || verbNounRe.MatchString(trimmed) {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) > 0 {
		return &Candidate{Raw: strings.Join(kept, "\n"), Source: HeuristicLines}
	}

	return &Candidate{Raw: strings.TrimSpace(text), Source: RawFallback}
}
