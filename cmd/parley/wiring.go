package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/parley-sh/parley/backend"
	"github.com/parley-sh/parley/backend/openai"
	"github.com/parley-sh/parley/config"
	"github.com/parley-sh/parley/confirm"
	"github.com/parley-sh/parley/observability"
	"github.com/parley-sh/parley/shellexec"
)

// loadConfig resolves the aggregate configuration: defaults alone, or the
// file named by --config merged over them.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

// newObserver returns a slog-backed observer when --verbose is set, a no-op
// observer otherwise.
func newObserver(cmd *cli.Command) observability.Observer {
	if !cmd.Bool("verbose") {
		return observability.NoOpObserver{}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return observability.NewSlogObserver(logger)
}

// buildRegistry registers a factory for each backend role named in the
// config. Backends are built lazily on first use, so a misconfigured speaker
// does not break a text-only session.
func buildRegistry(cfg *config.Config) (*backend.Registry, error) {
	reg := backend.NewRegistry()

	roles := []struct {
		name string
		kind backend.Kind
	}{
		{cfg.Chat, backend.KindChat},
		{cfg.Transcriber, backend.KindTranscriber},
		{cfg.Speaker, backend.KindSpeaker},
	}

	for _, role := range roles {
		bc, ok := cfg.Backends[role.name]
		if !ok {
			return nil, fmt.Errorf("no backend named %q in config", role.name)
		}
		if err := reg.Register(role.name, role.kind, clientFactory(bc)); err != nil {
			return nil, fmt.Errorf("failed to register backend %q: %w", role.name, err)
		}
	}

	return reg, nil
}

// clientFactory builds an API client from one backend config entry. The API
// key is read from the configured environment variable at build time.
func clientFactory(bc config.Backend) backend.Factory {
	return func() (any, error) {
		if bc.Provider != "" && bc.Provider != "openai" {
			return nil, fmt.Errorf("unsupported provider %q", bc.Provider)
		}

		var opts []openai.Option
		if bc.Voice != "" {
			opts = append(opts, openai.WithVoice(bc.Voice))
		}

		var apiKey string
		if bc.APIKeyEnv != "" {
			apiKey = os.Getenv(bc.APIKeyEnv)
		}

		return openai.NewClient(apiKey, bc.BaseURL, bc.Model, opts...), nil
	}
}

// resolveMode maps the configured confirmation mode, with --auto and
// --dry-run flags taking precedence.
func resolveMode(cmd *cli.Command, cfg *config.Config) (confirm.Mode, error) {
	if cmd.Bool("dry-run") {
		return confirm.DryRun, nil
	}
	if cmd.Bool("auto") {
		return confirm.AutoExecute, nil
	}
	return confirm.ParseMode(cfg.Confirm.Mode)
}

func resolvePolicy(cfg *config.Config) (confirm.Policy, error) {
	return confirm.ParsePolicy(cfg.Confirm.Policy)
}

// newRunner builds the shell executor with the configured timeout.
func newRunner(cfg *config.Config) *shellexec.Runner {
	return shellexec.New(
		shellexec.WithTimeout(time.Duration(cfg.Exec.TimeoutSeconds) * time.Second),
	)
}
