package main

import (
	"github.com/urfave/cli/v3"
)

// newRootCommand returns the top-level CLI command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "parley",
		Usage: "Conversational command assistant with confirmation-gated execution",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to JSON config file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Emit loop events to stderr",
			},
		},
		Commands: []*cli.Command{
			newChatCommand(),
			newVoiceCommand(),
			newScriptCommand(),
			newBackendsCommand(),
		},
	}
}
