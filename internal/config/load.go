// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrReadConfigFile is returned when a discovered configuration file cannot be read.
var ErrReadConfigFile = errors.New("failed to read configuration file")

// LoadOptions controls where Load takes the configuration from.
type LoadOptions struct {
	// URL is a go-getter URL or local path. When set, discovery is skipped.
	URL string
	// Root overrides the root directory from the file or defaults.
	Root string
	// Environ is used for HCL `env` references.
	Environ map[string]string
}

// Discover looks for one of FileNames in rootDir.
// It returns an empty string if there is none.
func Discover(rootDir string) (string, error) {
	fs := FsFactory()

	for _, name := range FileNames {
		p := filepath.Join(rootDir, name)

		fi, err := fs.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return "", errors.Join(ErrReadConfigFile, err)
		}

		if fi.IsDir() {
			continue
		}

		return p, nil
	}

	return "", nil
}

// Load returns the validated configuration.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, err := load(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "configuration loaded", "root", cfg.Root, "samples", len(cfg.Samples))

	return cfg, nil
}

func load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if opts.URL != "" {
		ctxlog.Info(ctx, "fetching configuration", "url", opts.URL)

		src, err := getURL(ctx, opts.URL)
		if err != nil {
			return nil, err
		}

		return Parse(fileNameFromURL(opts.URL), src, opts.Environ)
	}

	rootDir := opts.Root
	if rootDir == "" {
		rootDir = "."
	}

	p, err := Discover(rootDir)
	if err != nil {
		return nil, err
	}

	if p == "" {
		ctxlog.Debug(ctx, "no configuration file found, using defaults", "root", rootDir)
		return Defaults(), nil
	}

	ctxlog.Info(ctx, "using configuration file", "path", p)

	src, err := afero.ReadFile(FsFactory(), p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadConfigFile, p, err)
	}

	return Parse(p, src, opts.Environ)
}

// fileNameFromURL returns the file name of a go-getter URL with any query removed.
func fileNameFromURL(url string) string {
	if i := strings.Index(url, goGetterRefSeparator); i >= 0 {
		url = url[:i]
	}

	return path.Base(filepath.ToSlash(url))
}
