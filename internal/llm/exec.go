// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/matt-FFFFFF/sweep/internal/teereader"
)

var _ Gateway = (*execBackend)(nil)

// execBackend drives a local model runtime CLI as a subprocess, e.g. ollama.
// Model discovery shells out to `<command> list`; requests run
// `<command> run <model>` with the prompt on stdin. The runtime does not
// report token usage, so Response.Usage is always nil.
type execBackend struct {
	command string
}

func newExecBackend(cfg Config) *execBackend {
	return &execBackend{command: cfg.Command}
}

// ListModels implements Gateway.
func (b *execBackend) ListModels(ctx context.Context) []string {
	out, err := b.run(ctx, nil, "list")
	if err != nil {
		ctxlog.Error(ctx, "model discovery failed", "command", b.command, "error", err.Error())
		return nil
	}

	return parseModelListing(out)
}

// Send implements Gateway.
func (b *execBackend) Send(ctx context.Context, req Request) (*Response, error) {
	out, err := b.run(ctx, strings.NewReader(req.Prompt), "run", req.Model)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content: out,
		Model:   req.Model,
	}, nil
}

// TestConnection implements Gateway.
func (b *execBackend) TestConnection(ctx context.Context) bool {
	if _, err := exec.LookPath(b.command); err != nil {
		return false
	}

	_, err := b.run(ctx, nil, "list")

	return err == nil
}

func (b *execBackend) run(ctx context.Context, stdin *strings.Reader, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, b.command, args...)

	if stdin != nil {
		cmd.Stdin = stdin
	}

	stdout := &bytes.Buffer{}
	cmd.Stdout = stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBackend, err.Error())
	}

	// Model runtimes stream pull and spinner progress to stderr. The tee
	// reader keeps the full stream plus the last complete line, which is
	// usually the actual error message.
	tee := teereader.NewLastLineTeeReader(stderrPipe)

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %s", ErrBackend, err.Error())
	}

	io.Copy(io.Discard, tee) //nolint:errcheck

	if err := cmd.Wait(); err != nil {
		msg := tee.GetLastLine(0)
		if msg == "" {
			msg = strings.TrimSpace(string(tee.GetFullBufferBytes()))
		}

		if msg == "" {
			msg = err.Error()
		}

		return "", fmt.Errorf("%w: %s", ErrBackend, msg)
	}

	return stdout.String(), nil
}

// parseModelListing extracts model identifiers from tabular runtime output.
// The first whitespace-separated field of each line is the identifier; a
// leading header row is skipped.
func parseModelListing(out string) []string {
	var models []string

	for i, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if i == 0 && strings.EqualFold(fields[0], "name") {
			continue
		}

		models = append(models, fields[0])
	}

	return models
}
