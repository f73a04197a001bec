// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
)

var _ Runnable = (*FunctionCommand)(nil)

// ErrFunctionCmdPanic is returned when a function command panics.
type ErrFunctionCmdPanic struct {
	v any
}

// NewErrFunctionCmdPanic creates an ErrFunctionCmdPanic for the recovered value v.
func NewErrFunctionCmdPanic(v any) error {
	return &ErrFunctionCmdPanic{v: v}
}

// Error implements the error interface.
func (e *ErrFunctionCmdPanic) Error() string {
	return fmt.Sprintf("function command panic: %v", e.v)
}

// Unwrap returns the panic value if it was an error.
func (e *ErrFunctionCmdPanic) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}

// FunctionCommandFunc is run by FunctionCommand with the resolved working directory.
type FunctionCommandFunc func(ctx context.Context, workingDirectory string) error

// FunctionCommand runs a Go function as a step of a batch.
type FunctionCommand struct {
	*BaseCommand
	Func FunctionCommandFunc
}

// Run implements the Runnable interface for FunctionCommand.
// Panics are recovered and reported as ErrFunctionCmdPanic.
func (f *FunctionCommand) Run(ctx context.Context) Results {
	fullLabel := FullLabel(f)
	logger := ctxlog.Logger(ctx).With("runnableType", "FunctionCommand", "label", fullLabel)

	res := &Result{
		Label:  f.Label,
		Status: ResultStatusSuccess,
	}

	if f.Func == nil {
		logger.Debug("no function to run, returning success")
		return Results{res}
	}

	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("function command panicked", "panic", r)
				errCh <- NewErrFunctionCmdPanic(r)
			}
		}()

		logger.Debug("executing function")
		errCh <- f.Func(ctx, f.Cwd)
	}()

	var err error

	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		logger.Debug("function command failed", "error", err)

		res.Status = ResultStatusError
		res.ExitCode = -1
		res.Error = err

		if errors.Is(err, ErrSkipIntentional) {
			res.Status = ResultStatusSkipped
			res.ExitCode = 0
		}
	}

	return Results{res}
}
