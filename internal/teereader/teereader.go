// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
)

const (
	drainChunk = 32 * 1024
	// maxLineBytes bounds the line kept for LastLine. Longer lines keep their start.
	maxLineBytes = 4 * 1024
)

// ErrOverflow is returned by Err when more than the capped number of bytes was read.
var ErrOverflow = errors.New("output exceeds capture limit")

// LastLineTeeReader captures up to max bytes from an io.Reader and tracks the last complete line.
// Bytes beyond max are still read, so the writer on the other end never blocks, but they are discarded.
// All methods are safe for concurrent use.
type LastLineTeeReader struct {
	reader   io.Reader
	max      int
	mu       sync.RWMutex
	captured bytes.Buffer
	partial  strings.Builder
	lastLine string
	overflow bool
}

// NewLastLineTeeReader wraps r. A max of zero or less means no cap.
func NewLastLineTeeReader(r io.Reader, max int) *LastLineTeeReader {
	return &LastLineTeeReader{reader: r, max: max}
}

// Read implements io.Reader.
func (lt *LastLineTeeReader) Read(p []byte) (int, error) {
	n, err := lt.reader.Read(p)
	if n > 0 {
		lt.record(p[:n])
	}

	return n, err //nolint:wrapcheck
}

// Drain reads until EOF. Read errors other than EOF are returned.
func (lt *LastLineTeeReader) Drain() error {
	buf := make([]byte, drainChunk)

	for {
		_, err := lt.Read(buf)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (lt *LastLineTeeReader) record(p []byte) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	keep := p
	if lt.max > 0 {
		room := lt.max - lt.captured.Len()
		if room < len(keep) {
			lt.overflow = true
			keep = keep[:max(room, 0)]
		}
	}

	lt.captured.Write(keep)

	idx := bytes.LastIndexByte(p, '\n')
	if idx < 0 {
		lt.appendPartial(p)
		return
	}

	if prev := bytes.LastIndexByte(p[:idx], '\n'); prev >= 0 {
		lt.partial.Reset()
		lt.appendPartial(p[prev+1 : idx])
	} else {
		lt.appendPartial(p[:idx])
	}

	lt.lastLine = strings.TrimRight(lt.partial.String(), "\r")
	lt.partial.Reset()
	lt.appendPartial(p[idx+1:])
}

// appendPartial keeps at most maxLineBytes of the current line.
func (lt *LastLineTeeReader) appendPartial(b []byte) {
	room := maxLineBytes - lt.partial.Len()
	if room <= 0 {
		return
	}

	lt.partial.Write(b[:min(room, len(b))])
}

// LastLine returns the last complete line, truncated to maxLength with "..." when maxLength > 3.
func (lt *LastLineTeeReader) LastLine(maxLength int) string {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	if maxLength > 3 && len(lt.lastLine) > maxLength {
		return lt.lastLine[:maxLength-3] + "..."
	}

	return lt.lastLine
}

// Bytes returns a copy of the captured data.
func (lt *LastLineTeeReader) Bytes() []byte {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	return bytes.Clone(lt.captured.Bytes())
}

// Err returns ErrOverflow if data was discarded.
func (lt *LastLineTeeReader) Err() error {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	if lt.overflow {
		return ErrOverflow
	}

	return nil
}
