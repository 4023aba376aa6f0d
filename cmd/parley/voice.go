package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/record"
	"github.com/parley-sh/parley/voice"
)

// newVoiceCommand returns the voice subcommand.
func newVoiceCommand() *cli.Command {
	return &cli.Command{
		Name:  "voice",
		Usage: "Voice session: speak requests, confirm extracted commands",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "basic",
				Usage: "Echo notices as text only, skipping speech synthesis",
			},
			&cli.IntFlag{
				Name:    "seconds",
				Aliases: []string{"s"},
				Usage:   "Utterance capture window in seconds",
			},
			&cli.StringFlag{
				Name:  "device",
				Usage: "Capture device passed to the recording tool",
			},
			&cli.BoolFlag{
				Name:  "verbose-transcripts",
				Usage: "Echo every transcript before acting on it",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Execute extracted commands without asking",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show extracted commands without ever executing",
			},
		},
		Action: runVoice,
	}
}

func runVoice(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flags override the config's voice section.
	if cmd.IsSet("seconds") {
		cfg.Voice.CaptureSeconds = cmd.Int("seconds")
	}
	if cmd.IsSet("device") {
		cfg.Voice.Device = cmd.String("device")
	}
	if cmd.Bool("verbose-transcripts") {
		cfg.Voice.VerboseTranscripts = true
	}

	rec, err := record.Detect(cfg.Voice.Device)
	if err != nil {
		return err
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	chat, err := reg.Chat(cfg.Chat)
	if err != nil {
		return err
	}
	transcriber, err := reg.Transcriber(cfg.Transcriber)
	if err != nil {
		return err
	}

	mode, err := resolveMode(cmd, cfg)
	if err != nil {
		return err
	}
	policy, err := resolvePolicy(cfg)
	if err != nil {
		return err
	}

	opts := []voice.Option{
		voice.WithObserver(newObserver(cmd)),
		voice.WithMode(mode),
		voice.WithPolicy(policy),
		voice.WithCaptureSeconds(cfg.Voice.CaptureSeconds),
		voice.WithVerboseTranscripts(cfg.Voice.VerboseTranscripts),
	}
	if mode != confirm.DryRun {
		opts = append(opts, voice.WithExecutor(newRunner(cfg)))
	}
	if cfg.CommandPrompt != "" {
		opts = append(opts, voice.WithSystemPrompt(cfg.CommandPrompt))
	}

	if cmd.Bool("basic") {
		opts = append(opts, voice.WithVariant(voice.Basic))
	} else {
		speaker, err := reg.Speaker(cfg.Speaker)
		if err != nil {
			return err
		}
		opts = append(opts, voice.WithVariant(voice.Full), voice.WithSpeaker(speaker))
	}

	return voice.New(chat, transcriber, rec, opts...).Run(ctx)
}
