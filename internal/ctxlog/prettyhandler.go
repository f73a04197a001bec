// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/samplerunner/internal/color"
)

// TimeFormat is the timestamp layout used in log lines and progress messages.
const TimeFormat = "[15:04:05.000]"

var (
	// ErrMarshalAttribute is returned when record attributes cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when the destination writer fails.
	ErrIoWrite = errors.New("error when writing to output")
)

var _ slog.Handler = (*PrettyHandler)(nil)

// PrettyHandler renders "<time> <LEVEL>: <message> <attrs as json>" lines.
// Attributes are collected by an inner JSON handler so groups and WithAttrs behave as usual.
type PrettyHandler struct {
	inner            slog.Handler
	replace          func([]string, slog.Attr) slog.Attr
	buf              *bytes.Buffer
	mu               *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Option configures a PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets where lines are written. The default is os.Stderr.
func WithDestinationWriter(w io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = w
	}
}

// WithColour forces colored output.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour colors output when the color package says so.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs writes "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a PrettyHandler.
func NewPrettyHandler(opts *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	h := &PrettyHandler{
		inner: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: suppressDefaults(opts.ReplaceAttr),
		}),
		replace: opts.ReplaceAttr,
		buf:     buf,
		mu:      &sync.Mutex{},
		writer:  os.Stderr,
	}

	for _, opt := range options {
		opt(h)
	}

	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)

	return &c
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)

	return &c
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	parts := make([]string, 0, 4)

	if ts := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ts != "" {
		parts = append(parts, h.paint(ts, color.FgWhite))
	}

	if lvl := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); lvl != "" {
		parts = append(parts, h.paint(lvl+":", levelColour(r.Level)))
	}

	if msg := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); msg != "" {
		parts = append(parts, h.paint(msg, color.FgHiWhite))
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = 2
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		parts = append(parts, string(b))
	}

	if _, err := io.WriteString(h.writer, strings.Join(parts, " ")+"\n"); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies the user's ReplaceAttr to one of the built-in keys.
// An empty return means the attribute was dropped.
func (h *PrettyHandler) builtin(key string, v slog.Value) string {
	a := slog.Attr{Key: key, Value: v}
	if h.replace != nil {
		a = h.replace(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return ""
	}

	return a.Value.String()
}

func (h *PrettyHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Colorize(s, c)
}

func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.mu.Lock()
	defer func() {
		h.buf.Reset()
		h.mu.Unlock()
	}()

	if err := h.inner.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.buf.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
