package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/engine"
	"github.com/parley-sh/parley/script"
)

// newScriptCommand returns the script subcommand.
func newScriptCommand() *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Replay a fixed prompt list without a human in the loop",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "Prompt to replay, in order (repeatable)",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "File with one prompt per line, appended after --prompt",
			},
			&cli.BoolFlag{
				Name:  "simulate-negative",
				Usage: "Answer invitations to continue with a simulated no",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show extracted commands without executing",
			},
		},
		Action: runScript,
	}
}

func runScript(ctx context.Context, cmd *cli.Command) error {
	prompts := cmd.StringSlice("prompt")
	if path := cmd.String("file"); path != "" {
		fromFile, err := readPrompts(path)
		if err != nil {
			return err
		}
		prompts = append(prompts, fromFile...)
	}
	if len(prompts) == 0 {
		return fmt.Errorf("no prompts given: use --prompt or --file")
	}

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

	// Replays are deterministic: auto-execute unless dry-running.
	mode := confirm.AutoExecute
	opts := []engine.Option{
		engine.WithObserver(newObserver(cmd)),
	}
	if cmd.Bool("dry-run") {
		mode = confirm.DryRun
	} else {
		opts = append(opts, engine.WithExecutor(newRunner(cfg)))
	}
	opts = append(opts, engine.WithMode(mode))
	if cfg.SystemPrompt != "" {
		opts = append(opts, engine.WithSystemPrompt(cfg.SystemPrompt))
	}

	runner := script.New(engine.New(chat, opts...), prompts,
		script.WithSimulateNegative(cmd.Bool("simulate-negative")))

	consumed, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("replayed %d of %d prompts\n", consumed, len(prompts))
	return nil
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}
	return prompts, nil
}
