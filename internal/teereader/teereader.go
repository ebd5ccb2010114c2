// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader captures a subprocess output stream while tracking its
// last complete line. Model runtimes stream pull progress and spinners to
// stderr; when the process fails, the last complete line is usually the
// actual error message.
package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// LastLineTeeReader wraps an io.Reader, keeping the full stream and the most
// recent complete line. It is safe for concurrent use.
type LastLineTeeReader struct {
	reader   io.Reader
	full     bytes.Buffer
	lastLine string
	partial  strings.Builder
	mu       sync.RWMutex
}

// NewLastLineTeeReader wraps r.
func NewLastLineTeeReader(r io.Reader) *LastLineTeeReader {
	return &LastLineTeeReader{reader: r}
}

// Read implements io.Reader.
func (lt *LastLineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lt.mu.Lock()
		lt.full.Write(p[:n])
		lt.ingest(string(p[:n]))
		lt.mu.Unlock()
	}

	return n, err //nolint:wrapcheck
}

// ingest folds new data into the line tracking. Write lock must be held.
func (lt *LastLineTeeReader) ingest(data string) {
	lt.partial.WriteString(data)

	combined := lt.partial.String()

	lines := strings.Split(combined, "\n")
	if len(lines) == 1 {
		// Still no complete line.
		return
	}

	// The final element is the new partial tail: empty when data ended on a
	// newline, an unfinished line otherwise.
	lt.lastLine = lines[len(lines)-2]
	lt.partial.Reset()
	lt.partial.WriteString(lines[len(lines)-1])
}

// GetLastLine returns the last complete line read so far, or "" when no line
// has completed. A maxLength > 0 truncates the result, appending "...".
func (lt *LastLineTeeReader) GetLastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	result := lt.lastLine
	if maxLength > 0 && len(result) > maxLength {
		result = result[:maxLength-3] + "..."
	}

	return result
}

// GetFullBufferBytes returns a copy of everything read so far.
func (lt *LastLineTeeReader) GetFullBufferBytes() []byte {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return bytes.Clone(lt.full.Bytes())
}
