// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath creates OSCommands for executables found on the search path.
package commandinpath

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
)

// ErrCommandNotFound is returned when the executable is empty or cannot be found.
var ErrCommandNotFound = errors.New("command not found")

// LookPath resolves command to a full path. Names containing a separator are checked as given.
// On Windows the PATHEXT extensions are tried, so "mvn" finds "mvn.cmd".
func LookPath(command string) (string, error) {
	if command == "" {
		return "", ErrCommandNotFound
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCommandNotFound, command, err)
	}

	return path, nil
}

// New returns an OSCommand that runs command with args.
// The executable is resolved now, so a missing tool is reported before anything runs.
func New(base *runbatch.BaseCommand, command string, args ...string) (*runbatch.OSCommand, error) {
	path, err := LookPath(command)
	if err != nil {
		return nil, err
	}

	return &runbatch.OSCommand{
		BaseCommand: base,
		Path:        path,
		Args:        args,
	}, nil
}
