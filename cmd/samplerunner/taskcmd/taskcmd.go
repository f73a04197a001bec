// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskcmd turns registered tasks into CLI subcommands.
package taskcmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/samplerunner/cmd/samplerunner/cmdflags"
	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
	"github.com/matt-FFFFFF/samplerunner/internal/tasks"
	"github.com/urfave/cli/v3"
)

const (
	noOutputStdErrFlag       = "no-output-stderr"
	outputStdOutFlag         = "output-stdout"
	outputSuccessDetailsFlag = "output-success-details"
)

// ErrWriteResults is returned when the result summary cannot be written.
var ErrWriteResults = errors.New("failed to write results")

// Commands returns one subcommand per task in reg, in registration order.
func Commands(reg *tasks.Registry) []*cli.Command {
	all := reg.All()
	cmds := make([]*cli.Command, 0, len(all))

	for _, t := range all {
		cmds = append(cmds, newCommand(reg, t))
	}

	return cmds
}

func newCommand(reg *tasks.Registry, t tasks.Task) *cli.Command {
	description := t.Usage
	if len(t.Prerequisites) > 0 {
		description = fmt.Sprintf("%s.\nRuns first: %v", t.Usage, t.Prerequisites)
	}

	return &cli.Command{
		Name:        t.Name,
		Usage:       t.Usage,
		Description: description,
		Flags: slices.Concat(cmdflags.ConfigFlags(), []cli.Flag{
			&cli.BoolFlag{
				Name:        outputSuccessDetailsFlag,
				Aliases:     []string{"success"},
				Usage:       "Include successful results in the summary",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        noOutputStdErrFlag,
				Aliases:     []string{"no-stderr"},
				Usage:       "Exclude stderr output from the summary",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        outputStdOutFlag,
				Aliases:     []string{"stdout"},
				Usage:       "Include stdout output in the summary",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTask(ctx, cmd, reg, t.Name)
		},
	}
}

func runTask(ctx context.Context, cmd *cli.Command, reg *tasks.Registry, name string) error {
	ctx = ctxlog.With(ctx, "task", name)
	logger := ctxlog.Logger(ctx)
	logger.Debug("running task")

	cfg, err := cmdflags.LoadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	env := tasks.NewEnv(cfg)
	env.Stdout = cmd.Root().Writer

	res, runErr := reg.Run(ctx, name, env)
	if res == nil {
		return runErr
	}

	opts := runbatch.DefaultOutputOptions()
	opts.IncludeStdErr = !cmd.Bool(noOutputStdErrFlag)
	opts.IncludeStdOut = cmd.Bool(outputStdOutFlag)
	opts.ShowSuccessDetails = cmd.Bool(outputSuccessDetailsFlag)

	if err := res.Write(cmd.Root().Writer, opts); err != nil {
		return errors.Join(ErrWriteResults, err, runErr)
	}

	if runErr != nil {
		return runErr
	}

	logger.Info("task completed")

	return nil
}
