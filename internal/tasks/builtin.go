// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/commandinpath"
	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
	"github.com/matt-FFFFFF/samplerunner/internal/samples"
)

// ErrCredentialMissing is returned by the run task when the credential variable is unset.
// A set but empty value is passed on as an empty line.
var ErrCredentialMissing = errors.New("credential environment variable is not set")

const (
	TaskClean = "clean"
	TaskBuild = "build"
	TaskRun   = "run"
)

// Default is the registry of built-in tasks.
var Default = NewDefaultRegistry()

// NewDefaultRegistry returns a registry holding clean, build and run.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	for _, t := range []Task{
		{
			Name:  TaskClean,
			Usage: "Run the build tool's clean goal and remove untracked files in every sample",
			Build: buildClean,
		},
		{
			Name:          TaskBuild,
			Usage:         "Package every sample, after cleaning them",
			Prerequisites: []string{TaskClean},
			Build:         buildPackage,
		},
		{
			Name:  TaskRun,
			Usage: "Run every sample's archive, passing the credential on stdin",
			Build: buildRun,
		},
	} {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}

	return r
}

func buildClean(ctx context.Context, env *Env) (runbatch.Runnable, error) {
	cfg := env.Config

	list, err := env.sampleList()
	if err != nil {
		return nil, err
	}

	perSample := make([]runbatch.Runnable, 0, len(list))

	for _, s := range list {
		clean, err := toolCommand(env, cfg.BuildTool, cfg.CleanArgs)
		if err != nil {
			return nil, err
		}

		vcs, err := toolCommand(env, cfg.VCSTool, cfg.VCSCleanArgs)
		if err != nil {
			return nil, err
		}

		perSample = append(perSample, runbatch.NewSerialBatch(
			runbatch.NewBaseCommand(s.Name, s.Dir, runbatch.RunOnSuccess, nil),
			samples.NewCheckDir(s), clean, vcs,
		))
	}

	ctxlog.Debug(ctx, "clean task built", "samples", len(list))

	return newTaskBatch(env, TaskClean, perSample)
}

func buildPackage(ctx context.Context, env *Env) (runbatch.Runnable, error) {
	cfg := env.Config

	list, err := env.sampleList()
	if err != nil {
		return nil, err
	}

	perSample := make([]runbatch.Runnable, 0, len(list))

	for _, s := range list {
		pkg, err := toolCommand(env, cfg.BuildTool, cfg.PackageArgs)
		if err != nil {
			return nil, err
		}

		perSample = append(perSample, runbatch.NewSerialBatch(
			runbatch.NewBaseCommand(s.Name, s.Dir, runbatch.RunOnSuccess, nil),
			pkg,
		))
	}

	ctxlog.Debug(ctx, "build task built", "samples", len(list))

	return newTaskBatch(env, TaskBuild, perSample)
}

func buildRun(ctx context.Context, env *Env) (runbatch.Runnable, error) {
	cfg := env.Config

	cred, ok := env.Lookup(cfg.CredentialEnv)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCredentialMissing, cfg.CredentialEnv)
	}

	java, err := commandinpath.LookPath(cfg.Java)
	if err != nil {
		return nil, err
	}

	list, err := env.sampleList()
	if err != nil {
		return nil, err
	}

	searchPath, _ := env.Lookup("PATH")
	perSample := make([]runbatch.Runnable, 0, len(list))

	for _, s := range list {
		rc := samples.NewRunCommand(s, java, samples.Credential(cred), searchPath)
		rc.Out = env.stdout()
		rc.GOOS = env.goos()
		perSample = append(perSample, rc)
	}

	ctxlog.Debug(ctx, "run task built", "samples", len(list), "java", java, "credential", samples.Credential(cred))

	return newTaskBatch(env, TaskRun, perSample)
}

func newTaskBatch(env *Env, name string, cmds []runbatch.Runnable) (runbatch.Runnable, error) {
	root, err := env.root()
	if err != nil {
		return nil, err
	}

	return runbatch.NewSerialBatch(runbatch.NewBaseCommand(name, root, runbatch.RunOnSuccess, nil), cmds...), nil
}

// toolCommand resolves tool on the search path and labels the command with its command line.
func toolCommand(env *Env, tool string, args []string) (*runbatch.OSCommand, error) {
	label := strings.Join(append([]string{tool}, args...), " ")

	cmd, err := commandinpath.New(runbatch.NewBaseCommand(label, "", runbatch.RunOnSuccess, nil), tool, args...)
	if err != nil {
		return nil, err
	}

	cmd.Out = env.stdout()

	return cmd, nil
}
