// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"errors"
	"io"
	"slices"
)

// ErrResultChildrenHasError is set on a batch result when one of its children failed.
var ErrResultChildrenHasError = errors.New("result has children with errors")

// ResultStatus is the outcome of a Runnable.
type ResultStatus int

const (
	// ResultStatusSuccess means the runnable completed successfully.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusError means the runnable failed.
	ResultStatusError
	// ResultStatusSkipped means the runnable was not started.
	ResultStatusSkipped
)

// String implements fmt.Stringer.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	case ResultStatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of running a command or batch.
type Result struct {
	Label    string       // Label of the command or batch
	Status   ResultStatus // Outcome
	ExitCode int          // Process exit code, -1 if the process did not exit normally
	Error    error        // Error, if any
	StdOut   []byte       // Captured standard output
	StdErr   []byte       // Captured standard error
	Children Results      // Results of a batch's children
}

// Results is a list of results.
type Results []*Result

// HasError reports whether any result in the tree failed. Skipped results do not count.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Status == ResultStatusError {
			return true
		}

		if v.Status != ResultStatusSkipped && (v.ExitCode != 0 || (v.Error != nil && !isSkip(v.Error))) {
			return true
		}

		if v.Children.HasError() {
			return true
		}
	}

	return false
}

// Failed returns the failed leaves of the tree, in order.
func (r Results) Failed() Results {
	var out Results

	for v := range slices.Values(r) {
		if len(v.Children) > 0 {
			out = append(out, v.Children.Failed()...)
			continue
		}

		if v.Status == ResultStatusError {
			out = append(out, v)
		}
	}

	return out
}

// Write writes the results to w.
func (r Results) Write(w io.Writer, options *OutputOptions) error {
	return WriteResults(w, r, options)
}

func isSkip(err error) bool {
	return errors.Is(err, ErrSkipIntentional) || errors.Is(err, ErrSkipOnError)
}
