// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/config"
	"github.com/matt-FFFFFF/samplerunner/internal/samples"
)

// Env is everything a task needs to build its runnable.
type Env struct {
	Config  *config.Config
	Environ map[string]string // Snapshot of the process environment
	Stdout  io.Writer         // Progress and sample output, defaults to os.Stdout
	GOOS    string            // Defaults to runtime.GOOS
}

// NewEnv returns an Env for cfg with a snapshot of the current process environment.
func NewEnv(cfg *config.Config) *Env {
	return &Env{
		Config:  cfg,
		Environ: EnvironMap(os.Environ()),
		Stdout:  os.Stdout,
		GOOS:    runtime.GOOS,
	}
}

// EnvironMap converts KEY=value pairs to a map. Later duplicates win.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		m[k] = v
	}

	return m
}

// Lookup returns the value of key. Keys are case-insensitive on Windows.
func (e *Env) Lookup(key string) (string, bool) {
	if v, ok := e.Environ[key]; ok {
		return v, true
	}

	if e.goos() != "windows" {
		return "", false
	}

	for k, v := range e.Environ {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}

	return "", false
}

func (e *Env) goos() string {
	if e.GOOS == "" {
		return runtime.GOOS
	}

	return e.GOOS
}

func (e *Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}

	return e.Stdout
}

func (e *Env) root() (string, error) {
	root, err := filepath.Abs(e.Config.Root)
	if err != nil {
		return "", fmt.Errorf("%w: root %s: %w", config.ErrInvalidConfig, e.Config.Root, err)
	}

	return root, nil
}

// sampleList returns the configured samples rooted at the absolute root.
func (e *Env) sampleList() ([]samples.Sample, error) {
	root, err := e.root()
	if err != nil {
		return nil, err
	}

	list := make([]samples.Sample, 0, len(e.Config.Samples))
	for _, entry := range e.Config.Samples {
		list = append(list, samples.New(root, entry, e.Config.JarSuffix))
	}

	return list, nil
}
