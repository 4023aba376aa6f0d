// Package record captures microphone audio by shelling out to an external
// recording tool. The tool is an explicit prerequisite: when none is
// installed, voice sessions cannot proceed and callers must stop looping.
package record

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ErrRecorderMissing reports that no supported capture tool is on PATH.
var ErrRecorderMissing = errors.New("no audio recorder found (need arecord, sox, or ffmpeg)")

// tools lists supported recorders in preference order.
var tools = []string{"arecord", "sox", "ffmpeg"}

// Recorder captures fixed-length audio clips with one external tool.
type Recorder struct {
	tool   string
	device string
}

// Detect finds the first supported capture tool on PATH.
func Detect(device string) (*Recorder, error) {
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err == nil {
			return &Recorder{tool: tool, device: device}, nil
		}
	}
	return nil, ErrRecorderMissing
}

// Tool returns the name of the capture tool in use.
func (r *Recorder) Tool() string {
	return r.tool
}

// Capture records the given number of seconds into a temp WAV file and
// returns its path. The caller owns the file and should remove it when done.
func (r *Recorder) Capture(ctx context.Context, seconds int) (string, error) {
	if seconds <= 0 {
		return "", fmt.Errorf("capture window must be positive, got %d", seconds)
	}

	tmp, err := os.CreateTemp("", "parley-capture-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create capture file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	cmd := exec.CommandContext(ctx, r.tool, r.args(seconds, path)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%s failed: %w: %s", r.tool, err, out)
	}

	return path, nil
}

func (r *Recorder) args(seconds int, path string) []string {
	dur := strconv.Itoa(seconds)
	switch r.tool {
	case "arecord":
		args := []string{"-q", "-f", "cd", "-d", dur}
		if r.device != "" {
			args = append(args, "-D", r.device)
		}
		return append(args, path)
	case "sox":
		args := []string{"-q"}
		if r.device != "" {
			args = append(args, "-t", "alsa", r.device)
		} else {
			args = append(args, "-d")
		}
		return append(args, path, "trim", "0", dur)
	default: // ffmpeg
		device := r.device
		if device == "" {
			device = "default"
		}
		return []string{
			"-y", "-loglevel", "error",
			"-f", "alsa", "-i", device,
			"-t", dur, path,
		}
	}
}
