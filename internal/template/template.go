// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package template resolves an operation and a target into the final prompt
// text sent to the model. Resolution is a pure data transform: literal,
// case-sensitive, global placeholder substitution with no I/O.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/target"
)

// ErrTemplate is returned when an operation definition cannot produce a prompt.
var ErrTemplate = errors.New("malformed operation definition")

// Placeholders replaced during resolution. Unknown placeholders are left
// untouched.
const (
	PlaceholderFileContent   = "{{FILE_CONTENT}}"
	PlaceholderFilePath      = "{{FILE_PATH}}"
	PlaceholderFileName      = "{{FILE_NAME}}"
	PlaceholderWorkspacePath = "{{WORKSPACE_PATH}}"
)

// Resolve builds the request prompt for one target.
// For a task, the embedded template is used when present; otherwise a minimal
// default is synthesized naming the underlying command and appending the raw
// content. For a prompt, the resolved body is used verbatim.
func Resolve(op operation.Operation, t target.Target, content, workspace string) (string, error) {
	var tmpl string

	switch v := op.(type) {
	case operation.Task:
		if v.Command == "" {
			return "", fmt.Errorf("%w: task %q has no command identifier", ErrTemplate, v.Name)
		}

		tmpl = v.Template
		if tmpl == "" {
			tmpl = defaultTaskTemplate(v.Command)
		}
	case operation.Prompt:
		if v.Body == "" {
			return "", fmt.Errorf("%w: prompt %q has an empty body", ErrTemplate, v.Name)
		}

		tmpl = v.Body
	default:
		return "", fmt.Errorf("%w: unknown operation type %T", ErrTemplate, op)
	}

	return substitute(tmpl, t, content, workspace), nil
}

func defaultTaskTemplate(command string) string {
	return "Execute the task " + command + " on the following content:\n\n" + PlaceholderFileContent
}

func substitute(tmpl string, t target.Target, content, workspace string) string {
	r := strings.NewReplacer(
		PlaceholderFileContent, content,
		PlaceholderFilePath, t.Path,
		PlaceholderFileName, t.Name(),
		PlaceholderWorkspacePath, workspace,
	)

	return r.Replace(tmpl)
}
