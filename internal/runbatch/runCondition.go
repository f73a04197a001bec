// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

// RunCondition decides when a command runs relative to the previous one.
type RunCondition int

const (
	// RunOnSuccess runs the command only if the previous command succeeded.
	RunOnSuccess RunCondition = iota
	// RunOnError runs the command only if the previous command failed.
	RunOnError
	// RunOnAlways runs the command regardless of the previous command.
	RunOnAlways
)

const (
	runOnSuccessStr = "success"
	runOnErrorStr   = "error"
	runOnAlwaysStr  = "always"
	runOnUnknownStr = "unknown"
)

// String implements fmt.Stringer.
func (r RunCondition) String() string {
	switch r {
	case RunOnSuccess:
		return runOnSuccessStr
	case RunOnError:
		return runOnErrorStr
	case RunOnAlways:
		return runOnAlwaysStr
	default:
		return runOnUnknownStr
	}
}
