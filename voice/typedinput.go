package voice

import (
	"bufio"
	"io"
	"time"
)

// TypedInput offers typed lines with a deadline. A single goroutine pumps
// the underlying reader into a channel; Next either receives a line within
// the window or reports that none arrived.
type TypedInput struct {
	lines chan string
}

// NewTypedInput starts pumping lines from r.
func NewTypedInput(r io.Reader) *TypedInput {
	t := &TypedInput{lines: make(chan string)}
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
		close(t.lines)
	}()
	return t
}

// Next waits up to window for a typed line. The second return is false when
// the window elapsed or input ended.
func (t *TypedInput) Next(window time.Duration) (string, bool) {
	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case line, ok := <-t.lines:
		return line, ok
	case <-timer.C:
		return "", false
	}
}
