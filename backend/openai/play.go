package openai

import (
	"context"
	"os/exec"
)

// players are tried in order until one is found on PATH.
var players = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"aplay", "-q"},
}

// play renders an audio file through the first available player.
// Missing players and playback failures are ignored.
func play(ctx context.Context, path string) {
	for _, p := range players {
		bin, err := exec.LookPath(p[0])
		if err != nil {
			continue
		}
		args := append(p[1:], path)
		_ = exec.CommandContext(ctx, bin, args...).Run()
		return
	}
}
