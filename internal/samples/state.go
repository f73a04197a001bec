// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

// RunState is the lifecycle of a single sample run.
type RunState int

const (
	RunStateIdle RunState = iota
	RunStatePathAugmented
	RunStateProcessLaunched
	RunStateSucceeded
	RunStateFailed
)

// String implements fmt.Stringer.
func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStatePathAugmented:
		return "path-augmented"
	case RunStateProcessLaunched:
		return "process-launched"
	case RunStateSucceeded:
		return "succeeded"
	case RunStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
