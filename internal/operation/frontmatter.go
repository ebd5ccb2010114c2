// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package operation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrFrontmatter is returned when a frontmatter block cannot be parsed.
var ErrFrontmatter = errors.New("failed to parse prompt frontmatter")

const frontmatterDelimiter = "---"

// frontmatter is the on-disk shape of the metadata block.
// The tags and model values are comma-separated scalars, not YAML lists.
type frontmatter struct {
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Version     string `yaml:"version"`
	Tags        string `yaml:"tags"`
	Model       string `yaml:"model"`
}

// ParsePromptFile parses a prompt file into a Prompt.
// The file may begin with a metadata block delimited by a line containing
// exactly "---" before and after. Without a (terminated) block, the whole
// file is the prompt body.
func ParsePromptFile(name string, content []byte) (Prompt, error) {
	meta, body, err := splitFrontmatter(string(content))
	if err != nil {
		return Prompt{}, fmt.Errorf("%w: %s: %v", ErrFrontmatter, name, err)
	}

	p := Prompt{
		Name: name,
		Body: body,
	}

	if meta == "" {
		return p, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return Prompt{}, fmt.Errorf("%w: %s: %v", ErrFrontmatter, name, err)
	}

	p.Description = fm.Description
	p.Meta = Meta{
		Author:  fm.Author,
		Version: fm.Version,
		Tags:    splitCommaList(fm.Tags),
		Models:  splitCommaList(fm.Model),
	}

	return p, nil
}

// splitFrontmatter returns the raw metadata block (without delimiters) and the
// body. An absent or unterminated block yields an empty metadata string and
// the full content as the body.
func splitFrontmatter(content string) (string, string, error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontmatterDelimiter {
		return "", content, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != frontmatterDelimiter {
			continue
		}

		meta := strings.Join(lines[1:i], "")
		body := strings.Join(lines[i+1:], "")

		return meta, strings.TrimLeft(body, "\r\n"), nil
	}

	// No closing delimiter: treat the whole file as the body.
	return "", content, nil
}

func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
