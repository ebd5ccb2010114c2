// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastLineTracking(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLast string
	}{
		{
			name:     "empty input",
			input:    "",
			wantLast: "",
		},
		{
			name:     "no newline",
			input:    "still downloading",
			wantLast: "",
		},
		{
			name:     "single complete line",
			input:    "pulling manifest\n",
			wantLast: "pulling manifest",
		},
		{
			name:     "last complete line wins",
			input:    "pulling manifest\npulling layer 1/3\npulling layer 2/3\n",
			wantLast: "pulling layer 2/3",
		},
		{
			name:     "trailing partial line is ignored",
			input:    "error: model not found\npartial",
			wantLast: "error: model not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tee := NewLastLineTeeReader(strings.NewReader(tt.input))

			_, err := io.Copy(io.Discard, tee)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLast, tee.GetLastLine(0))
			assert.Equal(t, tt.input, string(tee.GetFullBufferBytes()))
		})
	}
}

func TestLastLineSpansReads(t *testing.T) {
	// A line split across Read calls must still be assembled.
	tee := NewLastLineTeeReader(&chunkReader{chunks: []string{"error: out ", "of memory\n"}})

	_, err := io.Copy(io.Discard, tee)
	require.NoError(t, err)

	assert.Equal(t, "error: out of memory", tee.GetLastLine(0))
}

func TestGetLastLineTruncation(t *testing.T) {
	tee := NewLastLineTeeReader(strings.NewReader("a very long error message line\n"))

	_, err := io.Copy(io.Discard, tee)
	require.NoError(t, err)

	assert.Equal(t, "a very ...", tee.GetLastLine(10))
}

// chunkReader yields one chunk per Read call.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}

	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]

	return n, nil
}
