// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/samplerunner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortName(t *testing.T) {
	tests := map[string]string{
		"MergePDF/":            "MergePDF",
		"PDFOptimize":          "PDFOptimize",
		"samples/MergePDF":     "MergePDF",
		"samples/MergePDF//":   "MergePDF",
		"./TextExtract":        "TextExtract",
		"group/../Watermark/":  "Watermark",
		"RegexExtractText/":    "RegexExtractText",
		"FlattenTransparency/": "FlattenTransparency",
	}

	for entry, want := range tests {
		t.Run(entry, func(t *testing.T) {
			assert.Equal(t, want, ShortName(entry))
		})
	}
}

func TestNew(t *testing.T) {
	root := filepath.FromSlash("/work/samples")
	s := New(root, "MergePDF/", config.DefaultJarSuffix)

	assert.Equal(t, "MergePDF/", s.Entry)
	assert.Equal(t, "MergePDF", s.Name)
	assert.Equal(t, filepath.Join(root, "MergePDF"), s.Dir)
	assert.Equal(t, filepath.Join(root, "MergePDF", "target", "lib"), s.LibDir)
	assert.Equal(t, filepath.Join("target", "MergePDF-1.0-SNAPSHOT-jar-with-dependencies.jar"), s.Archive)
}

func TestList(t *testing.T) {
	cfg := config.Defaults()
	cfg.Root = "/work"

	list := List(cfg)
	require.Len(t, list, 13)

	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		"ConvertToOffice", "FlattenTransparency", "ListWords", "MergePDF",
		"PDFAConverter", "PDFOptimize", "RasterizePage", "Redactions",
		"RegexExtractText", "RegexTextSearch", "SplitPDF", "TextExtract", "Watermark",
	}, names)
}

func TestSearchPathOverride(t *testing.T) {
	t.Run("windows appends with semicolon", func(t *testing.T) {
		got := SearchPathOverride("windows", `C:\Windows;C:\Tools`, `C:\s\MergePDF\target\lib`)
		assert.Equal(t, map[string]string{"PATH": `C:\Windows;C:\Tools;C:\s\MergePDF\target\lib`}, got)
	})

	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		t.Run(goos+" has no override", func(t *testing.T) {
			assert.Nil(t, SearchPathOverride(goos, "/usr/bin", "/s/MergePDF/target/lib"))
		})
	}
}

func TestCredential_Redacted(t *testing.T) {
	c := Credential("s3cret")

	assert.Equal(t, "[REDACTED]", c.String())
	assert.NotContains(t, fmt.Sprintf("%v %s %#v", c, c, c), "s3cret")
	assert.Equal(t, []byte("s3cret\n"), c.Payload())

	var sb strings.Builder

	logger := slog.New(slog.NewTextHandler(&sb, nil))
	logger.Info("launch", "credential", c)
	assert.NotContains(t, sb.String(), "s3cret")
	assert.Contains(t, sb.String(), "[REDACTED]")
}

func TestCredential_Empty(t *testing.T) {
	assert.Empty(t, Credential("").String())
	assert.Equal(t, []byte("\n"), Credential("").Payload())
}

func TestRunState_String(t *testing.T) {
	assert.Equal(t, "idle", RunStateIdle.String())
	assert.Equal(t, "path-augmented", RunStatePathAugmented.String())
	assert.Equal(t, "process-launched", RunStateProcessLaunched.String())
	assert.Equal(t, "succeeded", RunStateSucceeded.String())
	assert.Equal(t, "failed", RunStateFailed.String())
	assert.Equal(t, "unknown", RunState(42).String())
}
