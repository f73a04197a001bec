// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrSkipIntentional marks a command that was deliberately not run.
	ErrSkipIntentional = errors.New("intentionally skip execution")
	// ErrSkipOnError marks a command that was not run because an earlier command failed.
	ErrSkipOnError = errors.New("skip execution due to previous error")
)

// BatchError lists the failed leaves of a run.
type BatchError struct {
	FailedResults Results
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	sb := strings.Builder{}
	sb.WriteString("batch execution failed:")

	for _, r := range e.FailedResults {
		sb.WriteString("\n  ")
		sb.WriteString(r.Label)
		sb.WriteString(": ")

		if r.Error != nil {
			sb.WriteString(r.Error.Error())
		} else {
			sb.WriteString("failed")
		}

		sb.WriteString(" (exit code: ")
		sb.WriteString(strconv.Itoa(r.ExitCode))
		sb.WriteString(")")
	}

	return sb.String()
}

// Unwrap returns the errors of the failed results so errors.Is can see them.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.FailedResults))

	for _, r := range e.FailedResults {
		if r.Error != nil {
			errs = append(errs, r.Error)
		}
	}

	return errs
}
