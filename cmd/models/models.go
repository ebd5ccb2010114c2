// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package models

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/sweep/internal/app"
	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/urfave/cli/v3"
)

const configFlag = "config"

// ModelsCmd probes the configured backend and lists its models.
var ModelsCmd = &cli.Command{
	Name:        "models",
	Description: "List the models offered by the configured backend.",
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
	cfg, err := config.Resolve(ctx, cmd.String(configFlag))
	if err != nil {
		return cli.Exit("Failed to load configuration: "+err.Error(), 1)
	}

	a, err := app.New(cfg)
	if err != nil {
		return cli.Exit("Failed to initialize: "+err.Error(), 1)
	}

	if !a.Healthy(ctx) {
		return cli.Exit("Backend is not reachable", 1)
	}

	models := a.Models(ctx)
	if len(models) == 0 {
		return cli.Exit("Backend is reachable but offers no models", 1)
	}

	for _, m := range models {
		fmt.Fprintln(cmd.Writer, m) // nolint:errcheck
	}

	return nil
}
