// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

var _ Chooser = (*LinerChooser)(nil)
var _ Chooser = (*FirstChooser)(nil)
var _ Chooser = (*PinnedChooser)(nil)

// LinerChooser prompts the user on the terminal to pick a model.
type LinerChooser struct{}

// Choose implements Chooser.
// The options are printed numbered; the user may enter a number or a prefix
// of the model name, with tab completion. An empty or failed read declines.
func (LinerChooser) Choose(options []string) (string, bool) {
	// No choice to make, skip the prompt.
	if len(options) == 1 {
		return options[0], true
	}

	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		var c []string
		for _, o := range options {
			if strings.HasPrefix(o, l) {
				c = append(c, o)
			}
		}

		return c
	})

	fmt.Fprintln(os.Stderr, "Multiple models available:")

	for i, o := range options {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, o)
	}

	input, err := line.Prompt("model> ")
	if err != nil {
		return "", false
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return "", false
		}

		return options[n-1], true
	}

	for _, o := range options {
		if o == input {
			return o, true
		}
	}

	return "", false
}

// PinnedChooser selects a preconfigured model. It declines when the pinned
// model is not among the options, so a stale configuration surfaces as a
// model resolution failure rather than a silent substitution.
type PinnedChooser struct {
	Model string
}

// Choose implements Chooser.
func (c PinnedChooser) Choose(options []string) (string, bool) {
	for _, o := range options {
		if o == c.Model {
			return o, true
		}
	}

	return "", false
}

// FirstChooser picks the first available model. It is used for unattended
// runs, where prompting is not possible.
type FirstChooser struct{}

// Choose implements Chooser.
func (FirstChooser) Choose(options []string) (string, bool) {
	if len(options) == 0 {
		return "", false
	}

	return options[0], true
}
