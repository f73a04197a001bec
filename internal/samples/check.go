// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
	"github.com/spf13/afero"
)

// ErrSampleDirNotFound is returned when a sample directory does not exist.
var ErrSampleDirNotFound = errors.New("sample directory not found")

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// NewCheckDir returns a step that fails unless s.Dir is an existing directory.
func NewCheckDir(s Sample) *runbatch.FunctionCommand {
	return &runbatch.FunctionCommand{
		BaseCommand: runbatch.NewBaseCommand("check directory", s.Dir, runbatch.RunOnSuccess, nil),
		Func: func(_ context.Context, dir string) error {
			ok, err := afero.DirExists(FsFactory(), dir)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrSampleDirNotFound, dir, err)
			}

			if !ok {
				return fmt.Errorf("%w: %s", ErrSampleDirNotFound, dir)
			}

			return nil
		},
	}
}
