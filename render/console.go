// Package render writes the session transcript to the console: styled role
// prefixes, markdown-rendered assistant replies, and plain notices.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	candidateStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 1)
)

// Console renders one session's transcript to a writer.
type Console struct {
	out      io.Writer
	markdown *glamour.TermRenderer
}

// NewConsole creates a Console for the given writer. Markdown rendering is
// best-effort: when the terminal renderer cannot be built, replies print as
// plain text.
func NewConsole(out io.Writer) *Console {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		md = nil
	}
	return &Console{out: out, markdown: md}
}

// Prompt prints the input prompt without a trailing newline.
func (c *Console) Prompt() {
	fmt.Fprint(c.out, userStyle.Render("you ›")+" ")
}

// Assistant renders an assistant reply, as markdown when possible.
func (c *Console) Assistant(text string) {
	label := assistantStyle.Render("assistant ›")
	if c.markdown != nil {
		if rendered, err := c.markdown.Render(text); err == nil {
			fmt.Fprintf(c.out, "%s\n%s", label, rendered)
			return
		}
	}
	fmt.Fprintf(c.out, "%s %s\n", label, text)
}

// Candidate prints the command candidate offered for confirmation.
func (c *Console) Candidate(raw string) {
	fmt.Fprintln(c.out, candidateStyle.Render(raw))
}

// Transcript prints what the transcription backend heard.
func (c *Console) Transcript(text string) {
	fmt.Fprintf(c.out, "%s %s\n", noticeStyle.Render("heard ›"), text)
}

// Ask prints a confirmation prompt without a trailing newline.
func (c *Console) Ask(prompt string) {
	fmt.Fprint(c.out, noticeStyle.Render(prompt)+" ")
}

// Notice prints a neutral status line.
func (c *Console) Notice(text string) {
	fmt.Fprintln(c.out, noticeStyle.Render(text))
}

// Error prints a recoverable error line.
func (c *Console) Error(text string) {
	fmt.Fprintln(c.out, errorStyle.Render(text))
}

// Noticef formats and prints a neutral status line.
func (c *Console) Noticef(format string, args ...any) {
	c.Notice(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}
