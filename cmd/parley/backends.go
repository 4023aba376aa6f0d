package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// newBackendsCommand returns the backends subcommand.
func newBackendsCommand() *cli.Command {
	return &cli.Command{
		Name:   "backends",
		Usage:  "List the configured backend roles",
		Action: runBackends,
	}
}

func runBackends(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	for _, info := range reg.List() {
		fmt.Printf("%-24s %s\n", info.Name, info.Kind)
	}
	return nil
}
