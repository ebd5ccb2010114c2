// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package schedule

import (
	"context"

	"github.com/matt-FFFFFF/sweep/cmd/cmdstate"
	"github.com/matt-FFFFFF/sweep/internal/app"
	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/schedule"
	"github.com/urfave/cli/v3"
)

const configFlag = "config"

// ScheduleCmd runs the cron scheduler in the foreground.
var ScheduleCmd = &cli.Command{
	Name: "schedule",
	Description: `Run configured schedules until interrupted.
Each schedule fires its operation over its file patterns on a cron
expression. Runs that come due while another run is active are skipped; the
engine processes one run at a time.`,
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

	if len(cfg.Schedules) == 0 {
		return cli.Exit("No schedules are configured", 1)
	}

	// Unattended runs cannot prompt for a model.
	a, err := app.New(cfg, app.WithChooser(llm.FirstChooser{}))
	if err != nil {
		return cli.Exit("Failed to initialize: "+err.Error(), 1)
	}

	s, err := schedule.New(a, cfg.Schedules)
	if err != nil {
		return cli.Exit("Invalid schedule configuration: "+err.Error(), 1)
	}

	cmdstate.RegisterStop(a.Cancel)
	defer cmdstate.RegisterStop(nil)

	s.Run(ctx)

	return nil
}
