// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

// Code is an ANSI SGR parameter.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	csi   = "\033["
	sgr   = "m"
	reset = "\033[0m"
)

// Text attributes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Hi-intensity foreground colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(detect(os.Getenv, func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }))
}

// Enabled reports whether escape codes are emitted.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides terminal detection, e.g. when output is redirected to a file.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Colorize wraps str in the given codes and appends a reset.
func Colorize(str string, codes ...Code) string {
	if !Enabled() || len(codes) == 0 {
		return str
	}

	return sequence(codes) + str + reset
}

// ColorizeNoReset is Colorize without the trailing reset.
func ColorizeNoReset(str string, codes ...Code) string {
	if !Enabled() || len(codes) == 0 {
		return str
	}

	return sequence(codes) + str
}

// ControlString returns the escape sequence for codes, or "" when color is disabled.
func ControlString(codes ...Code) string {
	if !Enabled() {
		return ""
	}

	return sequence(codes)
}

func sequence(codes []Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}

	return csi + strings.Join(parts, ";") + sgr
}

// detect applies NO_COLOR, then FORCE_COLOR, then falls back to TTY detection.
func detect(getenv func(string) string, isTerminal func() bool) bool {
	if getenv(NoColor) != "" {
		return false
	}

	if getenv(ForceColor) != "" {
		return true
	}

	return isTerminal()
}
