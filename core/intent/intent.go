// Package intent classifies free-form utterances into the small set of
// conversational signals the session loops act on: exit intent, an
// assistant's invitation to continue, and short negative replies.
//
// Each classifier is a pure predicate over an ordered rule table consumed by
// one generic matcher. Classifiers are case-insensitive, return false on
// blank input, and never fail.
package intent

import (
	"regexp"
	"strings"
)

// Label is the outcome of classifying a single utterance. Labels are
// computed per utterance and never stored.
type Label int

const (
	None Label = iota
	Exit
	InviteContinue
	Negative
)

func (l Label) String() string {
	switch l {
	case Exit:
		return "exit"
	case InviteContinue:
		return "invite-continue"
	case Negative:
		return "negative"
	default:
		return "none"
	}
}

// rule pairs a compiled pattern with the label it produces. Tables are
// ordered; the first matching rule wins.
type rule struct {
	pattern *regexp.Regexp
	label   Label
}

func match(rules []rule, text string) Label {
	if strings.TrimSpace(text) == "" {
		return None
	}
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}
	return None
}

// exitRules match explicit sign-off words at the start of the utterance and
// session-closing phrasings anywhere in it. Gratitude ("thanks!") counts as
// an exit signal: a deliberately permissive heuristic with a known
// false-positive risk, kept because sign-offs almost always carry it.
var exitRules = []rule{
	{regexp.MustCompile(`(?i)^\s*(exit|quit|quite|q)\b`), Exit},
	{regexp.MustCompile(`(?i)^\s*(bye|goodbye)\b`), Exit},
	{regexp.MustCompile(`(?i)^\s*(end|stop|close|terminate)\b`), Exit},
	{regexp.MustCompile(`(?i)\b(close|end)\s+(the\s+)?(session|chat)\b`), Exit},
	{regexp.MustCompile(`(?i)\b(session|chat)\s+(close|end)`), Exit},
	{regexp.MustCompile(`(?i)thank(s|\s*you)?`), Exit},
}

// inviteRules match assistant phrasings that offer to keep the conversation
// going. Applied only to assistant-authored text.
var inviteRules = []rule{
	{regexp.MustCompile(`(?i)anything else`), InviteContinue},
	{regexp.MustCompile(`(?i)let me know if`), InviteContinue},
	{regexp.MustCompile(`(?i)any other question`), InviteContinue},
	{regexp.MustCompile(`(?i)is there anything`), InviteContinue},
	{regexp.MustCompile(`(?i)do you need anything`), InviteContinue},
	{regexp.MustCompile(`(?i)feel free to ask`), InviteContinue},
	{regexp.MustCompile(`(?i)happy to help with`), InviteContinue},
}

// negativeRules match short refusals, anchored at the start or spanning the
// whole utterance. Used to read "no" after an invite-to-continue as an exit.
var negativeRules = []rule{
	{regexp.MustCompile(`(?i)^\s*(no|nope|nah)\b`), Negative},
	{regexp.MustCompile(`(?i)^\s*not\s+now[\s.!]*$`), Negative},
	{regexp.MustCompile(`(?i)^\s*nothing\b`), Negative},
	{regexp.MustCompile(`(?i)^\s*all\s+good[\s.!]*$`), Negative},
	{regexp.MustCompile(`(?i)^\s*i'?m\s+good[\s.!]*$`), Negative},
	{regexp.MustCompile(`(?i)^\s*that'?s\s+all[\s.!]*$`), Negative},
	{regexp.MustCompile(`(?i)^\s*no,?\s+thanks[\s.!]*$`), Negative},
}

// IsExit reports whether the utterance expresses intent to end the session.
func IsExit(text string) bool {
	return match(exitRules, text) == Exit
}

// IsInviteToContinue reports whether assistant text offers to keep talking.
func IsInviteToContinue(text string) bool {
	return match(inviteRules, text) == InviteContinue
}

// IsNegative reports whether the utterance is a short negative reply.
func IsNegative(text string) bool {
	return match(negativeRules, text) == Negative
}
