package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/engine"
)

// newChatCommand returns the chat subcommand.
func newChatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive text session: type requests, confirm extracted commands",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Execute extracted commands without asking",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show extracted commands without ever executing",
			},
			&cli.BoolFlag{
				Name:  "reprompt",
				Usage: "Re-ask on unrecognized confirmation answers instead of reinterpreting them",
			},
		},
		Action: runChat,
	}
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
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

	mode, err := resolveMode(cmd, cfg)
	if err != nil {
		return err
	}
	policy, err := resolvePolicy(cfg)
	if err != nil {
		return err
	}
	if cmd.Bool("reprompt") {
		policy = confirm.PolicyReprompt
	}

	opts := []engine.Option{
		engine.WithObserver(newObserver(cmd)),
		engine.WithMode(mode),
		engine.WithPolicy(policy),
	}
	if mode != confirm.DryRun {
		opts = append(opts, engine.WithExecutor(newRunner(cfg)))
	}
	if cfg.SystemPrompt != "" {
		opts = append(opts, engine.WithSystemPrompt(cfg.SystemPrompt))
	}

	return engine.New(chat, opts...).Run(ctx, os.Stdin)
}
