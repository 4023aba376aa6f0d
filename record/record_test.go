package record

import "testing"

func TestArgs(t *testing.T) {
	tests := []struct {
		name     string
		recorder Recorder
		seconds  int
		want     []string
	}{
		{
			name:     "arecord default device",
			recorder: Recorder{tool: "arecord"},
			seconds:  5,
			want:     []string{"-q", "-f", "cd", "-d", "5", "out.wav"},
		},
		{
			name:     "arecord named device",
			recorder: Recorder{tool: "arecord", device: "hw:1,0"},
			seconds:  5,
			want:     []string{"-q", "-f", "cd", "-d", "5", "-D", "hw:1,0", "out.wav"},
		},
		{
			name:     "sox default device",
			recorder: Recorder{tool: "sox"},
			seconds:  3,
			want:     []string{"-q", "-d", "out.wav", "trim", "0", "3"},
		},
		{
			name:     "ffmpeg default device",
			recorder: Recorder{tool: "ffmpeg"},
			seconds:  4,
			want: []string{
				"-y", "-loglevel", "error",
				"-f", "alsa", "-i", "default",
				"-t", "4", "out.wav",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.recorder.args(tt.seconds, "out.wav")
			if len(got) != len(tt.want) {
				t.Fatalf("got %d args %v, want %d args %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("arg %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCapture_RejectsNonPositiveWindow(t *testing.T) {
	r := &Recorder{tool: "arecord"}
	if _, err := r.Capture(t.Context(), 0); err == nil {
		t.Error("Capture should reject a zero-length window")
	}
}
