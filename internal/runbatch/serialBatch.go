// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"slices"
)

var _ Runnable = (*SerialBatch)(nil)

// SerialBatch runs its commands one after another.
type SerialBatch struct {
	*BaseCommand
	Commands []Runnable // The commands or nested batches to run
}

// NewSerialBatch creates a SerialBatch and sets itself as the parent of cmds.
func NewSerialBatch(base *BaseCommand, cmds ...Runnable) *SerialBatch {
	b := &SerialBatch{
		BaseCommand: base,
		Commands:    cmds,
	}

	for _, cmd := range cmds {
		cmd.SetParent(b)
	}

	return b
}

// Run implements the Runnable interface for SerialBatch.
// A command whose ShouldRun says no is recorded as skipped and never started.
func (b *SerialBatch) Run(ctx context.Context) Results {
	results := make(Results, 0, len(b.Commands))

	prev := PreviousCommandStatus{
		State: ResultStatusSuccess,
	}

	for cmd := range slices.Values(b.Commands) {
		if cmd.GetParent() == nil {
			cmd.SetParent(b)
		}

		if err := ctx.Err(); err != nil {
			results = append(results, &Result{
				Label:    cmd.GetLabel(),
				Status:   ResultStatusSkipped,
				ExitCode: -1,
				Error:    err,
			})

			continue
		}

		cmd.InheritEnv(b.Env)
		cmd.SetCwd(b.Cwd)

		switch cmd.ShouldRun(prev) {
		case ShouldRunActionSkip:
			results = append(results, &Result{
				Label:  cmd.GetLabel(),
				Status: ResultStatusSkipped,
				Error:  ErrSkipIntentional,
			})

			continue
		case ShouldRunActionError:
			results = append(results, &Result{
				Label:  cmd.GetLabel(),
				Status: ResultStatusSkipped,
				Error:  ErrSkipOnError,
			})

			continue
		}

		childResults := cmd.Run(ctx)

		last := childResults[len(childResults)-1]
		prev = PreviousCommandStatus{
			State:    last.Status,
			ExitCode: last.ExitCode,
			Err:      last.Error,
		}

		results = slices.Concat(results, childResults)
	}

	res := &Result{
		Label:    b.Label,
		Status:   ResultStatusSuccess,
		Children: results,
	}

	if results.HasError() || ctx.Err() != nil {
		res.ExitCode = -1
		res.Error = ErrResultChildrenHasError
		res.Status = ResultStatusError
	}

	return Results{res}
}
