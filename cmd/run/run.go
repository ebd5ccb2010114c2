// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/sweep/cmd/cmdstate"
	"github.com/matt-FFFFFF/sweep/internal/app"
	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/progress"
	"github.com/matt-FFFFFF/sweep/internal/results"
	"github.com/urfave/cli/v3"
)

const (
	kindArg = "kind"
	nameArg = "name"

	patternFlag       = "pattern"
	configFlag        = "config"
	batchSizeFlag     = "batch-size"
	firstModelFlag    = "first-model"
	showResponsesFlag = "show-responses"

	eventBufferSize = 64
)

// RunCmd processes files through a prompt or task in batches.
var RunCmd = &cli.Command{
	Name: "run",
	Description: `Run a prompt or task over files matched by glob patterns.
Files are processed in batches of the given size; results are written to the
configured output directory, one document per file, and a report is printed
when the run finishes.

Config file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      kindArg,
			UsageText: "task|prompt",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringArg{
			Name:      nameArg,
			UsageText: "NAME",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:     patternFlag,
			Aliases:  []string{"p"},
			Usage:    "Glob pattern selecting target files. Specify multiple times to combine patterns.",
			OnlyOnce: false,
		},
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage: "URL of the sweep configuration file. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
			OnlyOnce: true,
		},
		&cli.IntFlag{
			Name:    batchSizeFlag,
			Aliases: []string{"b"},
			Usage:   "Number of files processed concurrently per batch. Defaults to the configured value.",
			Value:   0,
		},
		&cli.BoolFlag{
			Name:        firstModelFlag,
			Usage:       "Pick the first available model instead of prompting",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        showResponsesFlag,
			Usage:       "Include response bodies for successful items in the report",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	kind := operation.Kind(cmd.StringArg(kindArg))
	if !kind.Valid() {
		return cli.Exit("Please specify the operation kind: task or prompt", 1)
	}

	name := cmd.StringArg(nameArg)
	if name == "" {
		return cli.Exit("Please specify the operation name", 1)
	}

	patterns := cmd.StringSlice(patternFlag)
	if len(patterns) == 0 {
		return cli.Exit("Please provide at least one file pattern with --pattern", 1)
	}

	cfg, err := config.Resolve(ctx, cmd.String(configFlag))
	if err != nil {
		return cli.Exit("Failed to load configuration: "+err.Error(), 1)
	}

	reporter := progress.NewChannelReporter(ctx, eventBufferSize)
	defer reporter.Close()

	reporter.Listen(&logListener{ctx: ctx})

	var chooser llm.Chooser = llm.LinerChooser{}
	if cmd.Bool(firstModelFlag) {
		chooser = llm.FirstChooser{}
	}

	a, err := app.New(cfg,
		app.WithChooser(chooser),
		app.WithReporter(reporter),
	)
	if err != nil {
		return cli.Exit("Failed to initialize: "+err.Error(), 1)
	}

	// The first interrupt requests a cooperative stop of this run.
	cmdstate.RegisterStop(a.Cancel)
	defer cmdstate.RegisterStop(nil)

	summary, err := a.RunBatch(ctx, kind, name, patterns, cmd.Int(batchSizeFlag))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOperationNotFound):
			return cli.Exit(fmt.Sprintf("No %s named %q was found", kind, name), 1)
		case errors.Is(err, app.ErrNoMatchingFiles):
			return cli.Exit(fmt.Sprintf("No files match %v", patterns), 1)
		default:
			return cli.Exit("Run failed: "+err.Error(), 1)
		}
	}

	opts := results.DefaultReportOptions()
	opts.ShowResponses = cmd.Bool(showResponsesFlag)

	results.WriteReport(cmd.Writer, summary, opts)

	if summary.TotalFailed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

// logListener forwards progress events to the structured logger.
type logListener struct {
	ctx context.Context
}

// OnEvent implements progress.Listener.
func (l *logListener) OnEvent(event progress.Event) {
	logger := ctxlog.Logger(l.ctx).With("runID", event.RunID)

	switch event.Type {
	case progress.EventItemFailed:
		logger.Warn(event.Type.String(), "target", event.Target, "error", event.Err)
	case progress.EventItemCompleted:
		logger.Info(event.Type.String(), "target", event.Target)
	case progress.EventBatchStarted:
		logger.Info(event.Type.String(), "batch", event.BatchIndex, "detail", event.Message)
	default:
		logger.Info(event.Type.String(), "detail", event.Message)
	}
}
