// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

import (
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/config"
)

// Sample is one sample project.
type Sample struct {
	Entry   string // Entry as written in the configuration, e.g. "MergePDF/"
	Name    string // Short name, e.g. "MergePDF"
	Dir     string // Sample directory, the entry joined onto the root
	LibDir  string // Native library directory, <Dir>/target/lib
	Archive string // Archive path relative to Dir
}

// ShortName returns the last non-empty segment of entry.
func ShortName(entry string) string {
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(entry)))
	clean = strings.TrimRight(clean, "/")

	if i := strings.LastIndex(clean, "/"); i >= 0 {
		return clean[i+1:]
	}

	return clean
}

// New describes the sample at entry under root.
func New(root, entry, jarSuffix string) Sample {
	name := ShortName(entry)
	dir := filepath.Join(root, filepath.FromSlash(entry))

	return Sample{
		Entry:   entry,
		Name:    name,
		Dir:     dir,
		LibDir:  filepath.Join(dir, "target", "lib"),
		Archive: filepath.Join("target", name+jarSuffix),
	}
}

// List returns the configured samples in order.
func List(cfg *config.Config) []Sample {
	out := make([]Sample, 0, len(cfg.Samples))
	for _, e := range cfg.Samples {
		out = append(out, New(cfg.Root, e, cfg.JarSuffix))
	}

	return out
}
