// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantErr   error
		wantBytes []byte
	}{
		{
			name:    "empty url",
			url:     "",
			wantErr: ErrGetConfigFile,
		},
		{
			name:    "remote fetch fails",
			url:     "git::http://notexist//file.yaml",
			wantErr: ErrGetConfigFile,
		},
		{
			name:      "local file",
			url:       "./testdata/samplerunner.yaml",
			wantBytes: []byte("build_tool: ./mvnw\nsamples:\n  - MergePDF/\n  - SplitPDF/\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Fetch(context.Background(), tc.url)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, b)
		})
	}
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//samplerunner.yaml",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "samplerunner.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//ci/samplerunner.hcl?ref=v1.2.0",
			wantURL:  "git::https://github.com/org/repo//ci?ref=v1.2.0",
			wantFile: "samplerunner.hcl",
		},
		{
			url: "https://example.com/samplerunner.yaml",
		},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			u, f := splitFileNameFromGetterURL(tc.url)
			assert.Equal(t, tc.wantURL, u)
			assert.Equal(t, tc.wantFile, f)
		})
	}
}
