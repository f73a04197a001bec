// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/samplerunner/internal/commandinpath"
	"github.com/matt-FFFFFF/samplerunner/internal/config"
	"github.com/matt-FFFFFF/samplerunner/internal/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fake tools append "<tool> <args> <sample dir name>" to $SR_LOG.
// A tool exits 1 when that line equals $SR_FAIL.
const fakeTool = `#!/bin/sh
d=$(pwd)
line="%s $* ${d##*/}"
echo "$line" >> "$SR_LOG"
if [ "$line" = "$SR_FAIL" ]; then
  echo "simulated failure" >&2
  exit 1
fi
exit 0
`

const fakeJava = `#!/bin/sh
read -r key
d=$(pwd)
echo "java $* ${d##*/}" >> "$SR_LOG"
if [ "$key" = "good" ]; then
  echo "Done"
  exit 0
fi
echo "license invalid" >&2
exit 1
`

type fixture struct {
	root string
	log  string
	out  *bytes.Buffer
	env  *Env
}

func newFixture(t *testing.T, sampleEntries ...string) *fixture {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	bin := t.TempDir()
	for _, tool := range []string{"mvn", "git"} {
		script := strings.Replace(fakeTool, "%s", tool, 1)
		require.NoError(t, os.WriteFile(filepath.Join(bin, tool), []byte(script), 0o755))
	}

	require.NoError(t, os.WriteFile(filepath.Join(bin, "java"), []byte(fakeJava), 0o755))

	root := t.TempDir()
	for _, e := range sampleEntries {
		require.NoError(t, os.MkdirAll(filepath.Join(root, e), 0o755))
	}

	log := filepath.Join(t.TempDir(), "calls.log")

	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("SR_LOG", log)
	t.Setenv("SR_FAIL", "")

	cfg := config.Defaults()
	cfg.Root = root
	cfg.Samples = sampleEntries

	out := &bytes.Buffer{}
	env := NewEnv(cfg)
	env.Stdout = out

	return &fixture{root: root, log: log, out: out, env: env}
}

func (f *fixture) calls(t *testing.T) []string {
	t.Helper()

	b, err := os.ReadFile(f.log)
	if os.IsNotExist(err) {
		return nil
	}

	require.NoError(t, err)

	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

func TestClean(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")

	res, err := Default.Run(context.Background(), TaskClean, f.env)
	require.NoError(t, err)
	assert.False(t, res.HasError())

	assert.Equal(t, []string{
		"mvn clean MergePDF",
		"git clean -fdx MergePDF",
		"mvn clean SplitPDF",
		"git clean -fdx SplitPDF",
	}, f.calls(t))
}

func TestBuild_CleanPassPrecedesPackage(t *testing.T) {
	f := newFixture(t, "MergePDF/", "PDFOptimize", "Watermark/")

	_, err := Default.Run(context.Background(), TaskBuild, f.env)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"mvn clean MergePDF",
		"git clean -fdx MergePDF",
		"mvn clean PDFOptimize",
		"git clean -fdx PDFOptimize",
		"mvn clean Watermark",
		"git clean -fdx Watermark",
		"mvn package MergePDF",
		"mvn package PDFOptimize",
		"mvn package Watermark",
	}, f.calls(t))
}

func TestClean_FailFast(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")
	t.Setenv("SR_FAIL", "mvn clean MergePDF")

	res, err := Default.Run(context.Background(), TaskClean, f.env)
	require.ErrorIs(t, err, ErrTaskFailed)
	assert.True(t, res.HasError())

	assert.Equal(t, []string{"mvn clean MergePDF"}, f.calls(t))
}

func TestBuild_SkippedWhenCleanFails(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")
	t.Setenv("SR_FAIL", "git clean -fdx SplitPDF")

	_, err := Default.Run(context.Background(), TaskBuild, f.env)
	require.ErrorIs(t, err, ErrTaskFailed)

	for _, c := range f.calls(t) {
		assert.NotContains(t, c, "package")
	}
}

func TestBuild_PackageFailureStopsLaterSamples(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/", "TextExtract")
	t.Setenv("SR_FAIL", "mvn package SplitPDF")

	_, err := Default.Run(context.Background(), TaskBuild, f.env)
	require.ErrorIs(t, err, ErrTaskFailed)

	calls := f.calls(t)
	assert.Equal(t, "mvn package SplitPDF", calls[len(calls)-1])
	assert.NotContains(t, calls, "mvn package TextExtract")
}

func TestClean_MissingSampleDir(t *testing.T) {
	f := newFixture(t, "MergePDF/")
	f.env.Config.Samples = []string{"MergePDF/", "Missing/", "SplitPDF/"}

	_, err := Default.Run(context.Background(), TaskClean, f.env)
	require.ErrorIs(t, err, ErrTaskFailed)
	require.ErrorIs(t, err, samples.ErrSampleDirNotFound)

	assert.Equal(t, []string{"mvn clean MergePDF", "git clean -fdx MergePDF"}, f.calls(t))
}

func TestClean_ToolNotFound(t *testing.T) {
	f := newFixture(t, "MergePDF/")
	f.env.Config.VCSTool = "not-a-real-vcs-tool"

	res, err := Default.Run(context.Background(), TaskClean, f.env)
	require.ErrorIs(t, err, commandinpath.ErrCommandNotFound)
	assert.Nil(t, res)
	assert.Nil(t, f.calls(t))
}

func TestRun_CredentialMissing(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")
	delete(f.env.Environ, config.DefaultCredentialEnv)

	res, err := Default.Run(context.Background(), TaskRun, f.env)
	require.ErrorIs(t, err, ErrCredentialMissing)
	assert.ErrorContains(t, err, "APDFL_KEY")
	assert.Nil(t, res)
	assert.Nil(t, f.calls(t), "no subprocess may start")
	assert.Empty(t, f.out.String())
}

func TestRun_EmptyCredentialIsPassedOn(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")
	f.env.Environ[config.DefaultCredentialEnv] = ""

	_, err := Default.Run(context.Background(), TaskRun, f.env)
	require.NotErrorIs(t, err, ErrCredentialMissing)
	require.ErrorIs(t, err, samples.ErrSampleFailed)

	// The fake java read an empty line and rejected it.
	assert.Len(t, f.calls(t), 1)
	assert.Contains(t, f.out.String(), "license invalid\n")
}

func TestRun_Success(t *testing.T) {
	f := newFixture(t, "MergePDF/")
	f.env.Environ[config.DefaultCredentialEnv] = "good"
	parentPath := os.Getenv("PATH")

	_, err := Default.Run(context.Background(), TaskRun, f.env)
	require.NoError(t, err)

	assert.Contains(t, f.out.String(), "MergePDF sample ran successfully.\nDone\n")
	assert.Equal(t, []string{
		"java -Djava.library.path=" + filepath.Join(f.root, "MergePDF", "target", "lib") +
			" -jar target/MergePDF-1.0-SNAPSHOT-jar-with-dependencies.jar MergePDF",
	}, f.calls(t))
	assert.Equal(t, parentPath, os.Getenv("PATH"))
	assert.NotContains(t, f.out.String(), "good")
}

func TestRun_LicenceRejected(t *testing.T) {
	f := newFixture(t, "MergePDF/", "SplitPDF/")
	f.env.Environ[config.DefaultCredentialEnv] = "bad"

	res, err := Default.Run(context.Background(), TaskRun, f.env)
	require.ErrorIs(t, err, ErrTaskFailed)
	require.ErrorIs(t, err, samples.ErrSampleFailed)
	assert.ErrorContains(t, err, "MergePDF sample failed to run")
	assert.True(t, res.HasError())

	assert.Contains(t, f.out.String(), "license invalid\n")
	assert.NotContains(t, f.out.String(), "ran successfully")
	assert.Len(t, f.calls(t), 1, "later samples must not start")
}

func TestRun_CustomCredentialVariable(t *testing.T) {
	f := newFixture(t, "MergePDF/")
	f.env.Config.CredentialEnv = "MY_KEY"
	f.env.Environ["MY_KEY"] = "good"
	delete(f.env.Environ, config.DefaultCredentialEnv)

	_, err := Default.Run(context.Background(), TaskRun, f.env)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "MergePDF sample ran successfully.")
}
