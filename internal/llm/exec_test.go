// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelListing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "tabular output with header",
			in:   "NAME            ID      SIZE    MODIFIED\nllama3:latest   abc123  4.7 GB  2 days ago\nmistral:7b      def456  4.1 GB  5 days ago\n",
			want: []string{"llama3:latest", "mistral:7b"},
		},
		{
			name: "no header",
			in:   "llama3\n",
			want: []string{"llama3"},
		},
		{
			name: "blank lines skipped",
			in:   "NAME\n\nllama3\n\n",
			want: []string{"llama3"},
		},
		{
			name: "empty output",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseModelListing(tt.in))
		})
	}
}

func TestExecBackendMissingCommand(t *testing.T) {
	b := newExecBackend(Config{Kind: BackendExec, Command: "definitely-not-a-real-runtime"})
	ctx := context.Background()

	assert.False(t, b.TestConnection(ctx))
	assert.Empty(t, b.ListModels(ctx))

	_, err := b.Send(ctx, Request{Prompt: "p", Model: "m"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackend)
}
