// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{name: "none", files: map[string]string{"/work/other.txt": ""}, want: ""},
		{name: "yaml", files: map[string]string{"/work/samplerunner.yaml": ""}, want: "/work/samplerunner.yaml"},
		{name: "hcl", files: map[string]string{"/work/samplerunner.hcl": ""}, want: "/work/samplerunner.hcl"},
		{
			name: "yaml preferred",
			files: map[string]string{
				"/work/samplerunner.hcl": "",
				"/work/samplerunner.yml": "",
			},
			want: "/work/samplerunner.yml",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := memFs(t, tc.files)
			defer gostub.Stub(&FsFactory, func() afero.Fs { return fs }).Reset()

			got, err := Discover("/work")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	fs := memFs(t, nil)
	defer gostub.Stub(&FsFactory, func() afero.Fs { return fs }).Reset()

	c, err := Load(context.Background(), LoadOptions{Root: "/work"})
	require.NoError(t, err)
	assert.Equal(t, "/work", c.Root)
	assert.Equal(t, DefaultSamples, c.Samples)
}

func TestLoad_DiscoveredFile(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/samplerunner.hcl": `
build_tool = "mvnw"
samples    = ["MergePDF/"]
`,
	})
	defer gostub.Stub(&FsFactory, func() afero.Fs { return fs }).Reset()

	c, err := Load(context.Background(), LoadOptions{Root: "/work"})
	require.NoError(t, err)
	assert.Equal(t, "/work", c.Root)
	assert.Equal(t, "mvnw", c.BuildTool)
	assert.Equal(t, []string{"MergePDF/"}, c.Samples)
}

func TestLoad_InvalidFile(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/samplerunner.yaml": "samples:\n  - ../outside\n",
	})
	defer gostub.Stub(&FsFactory, func() afero.Fs { return fs }).Reset()

	_, err := Load(context.Background(), LoadOptions{Root: "/work"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_URL(t *testing.T) {
	var gotURL string

	defer gostub.Stub(&getURL, func(_ context.Context, url string) ([]byte, error) {
		gotURL = url
		return []byte("java: /opt/java\n"), nil
	}).Reset()

	url := "git::https://example.com/org/repo//config/samplerunner.yaml?ref=main"

	c, err := Load(context.Background(), LoadOptions{URL: url, Root: "/work"})
	require.NoError(t, err)
	assert.Equal(t, url, gotURL)
	assert.Equal(t, "/opt/java", c.Java)
	assert.Equal(t, "/work", c.Root)
}

func TestLoad_URLError(t *testing.T) {
	defer gostub.Stub(&getURL, func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.Join(ErrGetConfigFile, errors.New("boom"))
	}).Reset()

	_, err := Load(context.Background(), LoadOptions{URL: "https://example.com/x.yaml"})
	require.ErrorIs(t, err, ErrGetConfigFile)
}

func TestFileNameFromURL(t *testing.T) {
	assert.Equal(t, "samplerunner.yaml", fileNameFromURL("git::https://example.com/r//samplerunner.yaml?ref=v1"))
	assert.Equal(t, "samplerunner.hcl", fileNameFromURL("./testdata/samplerunner.hcl"))
}
