// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package list

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/sweep/internal/app"
	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/urfave/cli/v3"
)

const (
	kindArg    = "kind"
	configFlag = "config"
)

// ListCmd prints the available tasks and prompts.
var ListCmd = &cli.Command{
	Name:        "list",
	Description: "List available operations. Pass task or prompt to restrict the listing.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      kindArg,
			UsageText: "[task|prompt]",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     configFlag,
			Aliases:  []string{"c"},
			Usage:    "URL of the sweep configuration file",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	kind := cmd.StringArg(kindArg)
	if kind != "" && kind != "task" && kind != "prompt" {
		return cli.Exit("Unknown kind: "+kind, 1)
	}

	cfg, err := config.Resolve(ctx, cmd.String(configFlag))
	if err != nil {
		return cli.Exit("Failed to load configuration: "+err.Error(), 1)
	}

	a, err := app.New(cfg)
	if err != nil {
		return cli.Exit("Failed to initialize: "+err.Error(), 1)
	}

	if kind == "" || kind == "task" {
		tasks, err := a.Tasks(ctx)
		if err != nil {
			return cli.Exit("Failed to list tasks: "+err.Error(), 1)
		}

		fmt.Fprintf(cmd.Writer, "Tasks (%d):\n", len(tasks)) // nolint:errcheck

		for _, t := range tasks {
			fmt.Fprintf(cmd.Writer, "  %s\t%s\n", t.Name, t.Description) // nolint:errcheck
		}
	}

	if kind == "" || kind == "prompt" {
		prompts, err := a.Prompts(ctx)
		if err != nil {
			return cli.Exit("Failed to list prompts: "+err.Error(), 1)
		}

		fmt.Fprintf(cmd.Writer, "Prompts (%d):\n", len(prompts)) // nolint:errcheck

		for _, p := range prompts {
			line := p.Name

			if p.Description != "" {
				line += "\t" + p.Description
			}

			if len(p.Meta.Tags) > 0 {
				line += " [" + strings.Join(p.Meta.Tags, ", ") + "]"
			}

			fmt.Fprintf(cmd.Writer, "  %s\n", line) // nolint:errcheck
		}
	}

	return nil
}
