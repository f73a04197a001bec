// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
)

// ErrSampleFailed is returned when a sample exits unsuccessfully or cannot be started.
var ErrSampleFailed = errors.New("sample failed to run")

var _ runbatch.Runnable = (*RunCommand)(nil)

// RunCommand launches one sample's archive on the JVM.
type RunCommand struct {
	*runbatch.BaseCommand
	Sample     Sample
	Java       string     // Resolved path of the JVM launcher
	Credential Credential // Written to stdin followed by a newline
	SearchPath string     // Parent PATH, used for the Windows override
	GOOS       string     // Defaults to runtime.GOOS
	Out        io.Writer  // Defaults to os.Stdout

	mu    sync.Mutex
	state RunState
}

// NewRunCommand returns a RunCommand for s, labelled with its short name and run in its directory.
func NewRunCommand(s Sample, java string, cred Credential, searchPath string) *RunCommand {
	return &RunCommand{
		BaseCommand: runbatch.NewBaseCommand(s.Name, s.Dir, runbatch.RunOnSuccess, nil),
		Sample:      s,
		Java:        java,
		Credential:  cred,
		SearchPath:  searchPath,
	}
}

// State returns the current lifecycle state.
func (c *RunCommand) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *RunCommand) setState(ctx context.Context, s RunState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()

	ctxlog.Debug(ctx, "sample state", "sample", c.Sample.Name, "state", s.String())
}

// Args returns the JVM arguments.
func (c *RunCommand) Args() []string {
	return []string{
		"-Djava.library.path=" + c.Sample.LibDir,
		"-jar",
		c.Sample.Archive,
	}
}

// Run implements the Runnable interface.
func (c *RunCommand) Run(ctx context.Context) runbatch.Results {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	goos := c.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	c.setState(ctx, RunStateIdle)

	env := maps.Clone(c.Env)
	if env == nil {
		env = make(map[string]string)
	}

	maps.Copy(env, SearchPathOverride(goos, c.SearchPath, c.Sample.LibDir))
	c.setState(ctx, RunStatePathAugmented)

	ps := &runbatch.OSCommand{
		BaseCommand: runbatch.NewBaseCommand(c.Label, c.Cwd, runbatch.RunOnAlways, env),
		Path:        c.Java,
		Args:        c.Args(),
		Stdin:       c.Credential.Payload(),
		Out:         out,
	}
	ps.SetParent(c.GetParent())

	ctxlog.Info(ctx, "launching sample", "sample", c.Sample.Name, "credential", c.Credential)
	c.setState(ctx, RunStateProcessLaunched)

	results := ps.Run(ctx)
	res := results[0]

	if res.Status == runbatch.ResultStatusSuccess {
		c.setState(ctx, RunStateSucceeded)
		fmt.Fprintf(out, "%s sample ran successfully.\n", c.Sample.Name) //nolint:errcheck
		writeOutput(out, res.StdOut)

		return results
	}

	c.setState(ctx, RunStateFailed)
	writeOutput(out, res.StdErr)

	res.Error = errors.Join(fmt.Errorf("%s %w", c.Sample.Name, ErrSampleFailed), res.Error)

	return results
}

// writeOutput writes b with invalid UTF-8 sequences dropped.
func writeOutput(w io.Writer, b []byte) {
	if len(b) == 0 {
		return
	}

	s := strings.ToValidUTF8(string(b), "")
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	io.WriteString(w, s) //nolint:errcheck
}
