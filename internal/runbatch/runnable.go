// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
)

// Runnable is a command or a batch of commands.
type Runnable interface {
	// Run executes the runnable and returns its results. It must not return an empty slice.
	Run(context.Context) Results
	// SetCwd resolves the working directory against cwd. Absolute directories are kept.
	SetCwd(string)
	// InheritEnv adds variables that are not already set.
	InheritEnv(map[string]string)
	// GetLabel returns the label of the runnable.
	GetLabel() string
	// GetParent returns the enclosing batch, or nil.
	GetParent() Runnable
	// SetParent sets the enclosing batch.
	SetParent(Runnable)
	// ShouldRun decides whether to run, given the outcome of the previous sibling.
	ShouldRun(PreviousCommandStatus) ShouldRunAction
}
