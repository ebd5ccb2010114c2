// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/sweep"
	"github.com/matt-FFFFFF/sweep/cmd/list"
	"github.com/matt-FFFFFF/sweep/cmd/models"
	"github.com/matt-FFFFFF/sweep/cmd/run"
	"github.com/matt-FFFFFF/sweep/cmd/schedule"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		list.ListCmd,
		models.ModelsCmd,
		run.RunCmd,
		schedule.ScheduleCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "sweep",
	Version:   sweep.Version,
	Description: `Sweep runs LLM prompts and tasks over batches of files. It discovers
targets with glob patterns, processes them in bounded concurrent batches
against a local inference backend, and writes one result document per file
along with a run report. Prompts are markdown files with YAML frontmatter;
tasks come from the configuration file.`,
	Usage:     "sweep run prompt summarize -p 'docs/*.md'",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
