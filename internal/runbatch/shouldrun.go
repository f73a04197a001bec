// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

// ShouldRunAction is the outcome of Runnable.ShouldRun.
type ShouldRunAction int

const (
	// ShouldRunActionRun means run the command.
	ShouldRunActionRun ShouldRunAction = iota
	// ShouldRunActionSkip means skip the command without treating it as an error.
	ShouldRunActionSkip
	// ShouldRunActionError means skip the command because an earlier one failed.
	ShouldRunActionError
)

// PreviousCommandStatus is the outcome of the previous sibling in a batch.
type PreviousCommandStatus struct {
	State    ResultStatus
	ExitCode int
	Err      error
}
