// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the samplerunner command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/samplerunner"
	"github.com/matt-FFFFFF/samplerunner/cmd/samplerunner/list"
	"github.com/matt-FFFFFF/samplerunner/cmd/samplerunner/taskcmd"
	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/signalbroker"
	"github.com/matt-FFFFFF/samplerunner/internal/tasks"
	"github.com/urfave/cli/v3"
)

func newRootCmd(reg *tasks.Registry, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "samplerunner",
		Usage: "Clean, build and run the SDK samples",
		Description: `samplerunner cleans, builds and runs the SDK sample projects in order.
Each sample is built with Maven and launched with java. The licence key is read from
the APDFL_KEY environment variable and passed to each sample on stdin.`,
		Commands:  slices.Concat(taskcmd.Commands(reg), []*cli.Command{list.ListCmd}),
		Writer:    stdout,
		ErrWriter: stderr,
		Version:   fmt.Sprintf("%s (commit: %s)", samplerunner.Version, samplerunner.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	ctx = ctxlog.With(ctx, "runId", uuid.NewString())

	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd(tasks.Default, os.Stdout, os.Stderr).Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Info(ctx, "command completed successfully")
}
