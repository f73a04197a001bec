// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/color"
)

// OutputOptions controls what WriteResults includes.
type OutputOptions struct {
	IncludeStdOut      bool // Include captured stdout
	IncludeStdErr      bool // Include captured stderr
	ShowSuccessDetails bool // Include output for successful leaves too
}

// DefaultOutputOptions shows stderr of failed commands only.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
	}
}

// WriteResults writes results to w as an indented tree.
func WriteResults(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, r := range results {
		if err := writeResultWithIndent(w, r, "", options); err != nil {
			return err
		}
	}

	return nil
}

func writeResultWithIndent(w io.Writer, r *Result, indent string, options *OutputOptions) error {
	var statusStr string

	var labelColor color.Code

	switch r.Status {
	case ResultStatusSkipped:
		statusStr, labelColor = color.Colorize("~", color.FgYellow), color.FgYellow
	case ResultStatusError:
		statusStr, labelColor = color.Colorize("✗", color.FgRed), color.FgRed
	case ResultStatusSuccess:
		statusStr, labelColor = color.Colorize("✓", color.FgGreen), color.FgGreen
	default:
		statusStr, labelColor = color.Colorize("?", color.FgWhite), color.FgWhite
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s%s %s", indent, statusStr, color.Colorize(label, color.Bold, labelColor))

	if r.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", r.ExitCode)
	}

	sb.WriteString("\n")

	// The children carry the real errors.
	if r.Error != nil && !errors.Is(r.Error, ErrResultChildrenHasError) {
		errColor := color.FgRed
		if r.Status == ResultStatusSkipped {
			errColor = color.FgYellow
		}

		fmt.Fprintf(&sb, "%s  %s %s\n", indent, color.Colorize("➜ Error:", errColor), r.Error.Error())
	}

	failed := r.Status == ResultStatusError || r.ExitCode != 0
	showDetails := len(r.Children) == 0 && (failed || options.ShowSuccessDetails)

	if showDetails && options.IncludeStdOut && len(r.StdOut) > 0 {
		fmt.Fprintf(&sb, "%s  ➜ Output:\n", indent)
		sb.WriteString(formatOutput(r.StdOut, indent+"     "))
	}

	if showDetails && options.IncludeStdErr && len(r.StdErr) > 0 {
		fmt.Fprintf(&sb, "%s  %s\n", indent, color.Colorize("➜ Error Output:", color.FgHiRed))
		sb.WriteString(formatOutput(r.StdErr, indent+"     "))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err //nolint:wrapcheck
	}

	for _, child := range r.Children {
		if err := writeResultWithIndent(w, child, indent+"  ", options); err != nil {
			return err
		}
	}

	return nil
}

// formatOutput indents every non-empty line of output.
func formatOutput(output []byte, indent string) string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")

	sb := strings.Builder{}
	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
