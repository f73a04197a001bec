// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/signalbroker"
	"github.com/matt-FFFFFF/samplerunner/internal/teereader"
)

const heartbeatLineWidth = 80

var _ Runnable = (*OSCommand)(nil)

// HeartbeatInterval is how often a running process reports progress.
var HeartbeatInterval = 10 * time.Second

// MaxCaptureSize is how many bytes of each output stream are kept in the result.
// Output beyond it is read and discarded, and does not affect the result status.
var MaxCaptureSize = 8 * 1024 * 1024 // 8MB

var (
	// ErrBufferOverflow is logged when captured output was truncated at MaxCaptureSize.
	ErrBufferOverflow = errors.New("output exceeds max capture size")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when an output pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrFailedToCreatePipe is returned when an operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToWriteStdin is returned when the stdin payload could not be delivered.
	ErrFailedToWriteStdin = errors.New("failed to write stdin")
	// ErrContextDone is returned when the context ends while the process is running.
	ErrContextDone = errors.New("context done, process killed")
	// ErrSignalReceived is returned when a signal was forwarded to the process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a repeated signal forced the process to be killed.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// OSCommand runs an executable directly, without a shell.
type OSCommand struct {
	*BaseCommand
	Path             string    // Full path of the executable
	Args             []string  // Arguments, not including the executable name
	Stdin            []byte    // Written to the child's stdin, which is then closed. Nil inherits our stdin.
	SuccessExitCodes []int     // Exit codes treated as success, defaults to 0
	Out              io.Writer // Progress messages, defaults to os.Stdout
	sigCh            chan os.Signal
}

// Run implements the Runnable interface for OSCommand.
func (c *OSCommand) Run(ctx context.Context) Results {
	fullLabel := FullLabel(c)
	logger := ctxlog.Logger(ctx).With("runnableType", "OSCommand", "label", fullLabel)

	logger.Debug("command info", "path", c.Path, "cwd", c.Cwd, "args", c.Args)

	successCodes := c.SuccessExitCodes
	if successCodes == nil {
		successCodes = []int{0}
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	res := &Result{
		Label:    c.Label,
		ExitCode: -1,
		Status:   ResultStatusError,
	}

	p, err := newPipes(c.Stdin != nil)
	if err != nil {
		res.Error = errors.Join(ErrFailedToCreatePipe, err)
		return Results{res}
	}

	stdin := os.Stdin
	if p.inR != nil {
		stdin = p.inR
	}

	execName := filepath.Base(c.Path)
	args := slices.Concat([]string{execName}, c.Args)

	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   MergeEnv(os.Environ(), c.Env),
		Files: []*os.File{stdin, p.outW, p.errW},
	})

	// The child holds its own copies of these ends now.
	p.closeChildEnds()

	if err != nil {
		p.closeParentEnds()

		res.Error = errors.Join(ErrCouldNotStartProcess, err)

		return Results{res}
	}

	startTime := time.Now()
	fmt.Fprintf(out, "Starting %s: at %s\n", fullLabel, startTime.Format(ctxlog.TimeFormat)) //nolint:errcheck
	logger.Debug("process started", "pid", ps.Pid)

	stdout := teereader.NewLastLineTeeReader(p.outR, MaxCaptureSize)
	stderr := teereader.NewLastLineTeeReader(p.errR, MaxCaptureSize)

	var (
		wg        sync.WaitGroup
		readErrs  = make([]error, 2)
		stdinErr  error
		killedErr = make(chan error, 1)
		done      = make(chan struct{})
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		readErrs[0] = stdout.Drain()
	}()

	go func() {
		defer wg.Done()
		readErrs[1] = stderr.Drain()
	}()

	if p.inW != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, err := p.inW.Write(c.Stdin); err != nil {
				stdinErr = errors.Join(ErrFailedToWriteStdin, err)
			}

			if err := p.inW.Close(); err != nil && stdinErr == nil {
				stdinErr = errors.Join(ErrFailedToWriteStdin, err)
			}
		}()
	}

	watchdogDone := make(chan struct{})

	go func() {
		defer close(watchdogDone)
		c.watch(ctx, ps, sigCh, watchState{
			out:       out,
			label:     fullLabel,
			start:     startTime,
			stdout:    stdout,
			killedErr: killedErr,
			done:      done,
		})
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	close(done)
	<-watchdogDone
	wg.Wait()
	p.closeParentEnds()

	fmt.Fprintf(out, "Finished %s: at %s\n", fullLabel, time.Now().Format(ctxlog.TimeFormat)) //nolint:errcheck

	res.StdOut = stdout.Bytes()
	res.StdErr = stderr.Bytes()
	res.Error = psErr

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	select {
	case e := <-killedErr:
		res.Error = errors.Join(res.Error, e)
		res.ExitCode = -1
	default:
	}

	for _, rErr := range readErrs {
		if rErr != nil {
			res.Error = errors.Join(res.Error, ErrFailedToReadBuffer, rErr)
		}
	}

	if stdout.Err() != nil {
		logger.Warn("stdout truncated", "error", ErrBufferOverflow, "limit", MaxCaptureSize)
		res.StdOut = append(res.StdOut, truncationMarker()...)
	}

	if stderr.Err() != nil {
		logger.Warn("stderr truncated", "error", ErrBufferOverflow, "limit", MaxCaptureSize)
		res.StdErr = append(res.StdErr, truncationMarker()...)
	}

	// A child that exits without reading stdin is judged on its exit code alone.
	if stdinErr != nil {
		logger.Debug("stdin not fully delivered", "error", stdinErr)
	}

	switch {
	case res.Error == nil && slices.Contains(successCodes, res.ExitCode):
		res.Status = ResultStatusSuccess
	default:
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}

		res.Status = ResultStatusError
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "status", res.Status.String())

	return Results{res}
}

type watchState struct {
	out       io.Writer
	label     string
	start     time.Time
	stdout    *teereader.LastLineTeeReader
	killedErr chan<- error
	done      <-chan struct{}
}

// watch forwards the first signal of each kind to the process, kills it on a repeat
// or when ctx ends, and prints a heartbeat while it runs.
func (c *OSCommand) watch(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, ws watchState) {
	logger := ctxlog.Logger(ctx)
	seen := make(map[os.Signal]struct{})

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	report := func(err error) {
		select {
		case ws.killedErr <- err:
		default:
		}
	}

	for {
		select {
		case <-ws.done:
			return

		case <-ticker.C:
			elapsed := time.Since(ws.start).Round(time.Second)
			fmt.Fprintf(ws.out, "Running %s: [%s] %s\n", ws.label, elapsed, ws.stdout.LastLine(heartbeatLineWidth)) //nolint:errcheck

		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				logger.Info("received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)
				report(ErrDuplicateSignalReceived)

				return
			}

			seen[s] = struct{}{}

			logger.Info("forwarding signal to process", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				logger.Info("failed to send signal", "signal", s.String(), "error", err)
			}

			report(ErrSignalReceived)

		case <-ctx.Done():
			logger.Info("context done, killing process")
			killPs(ctx, ps)
			report(ErrContextDone)

			return
		}
	}
}

func truncationMarker() string {
	return fmt.Sprintf("\n[output truncated after %d bytes]\n", MaxCaptureSize)
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}

type pipes struct {
	inR, inW   *os.File
	outR, outW *os.File
	errR, errW *os.File
}

func newPipes(withStdin bool) (*pipes, error) {
	p := &pipes{}

	var err error

	if p.outR, p.outW, err = os.Pipe(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if p.errR, p.errW, err = os.Pipe(); err != nil {
		p.closeAll()
		return nil, err //nolint:wrapcheck
	}

	if withStdin {
		if p.inR, p.inW, err = os.Pipe(); err != nil {
			p.closeAll()
			return nil, err //nolint:wrapcheck
		}
	}

	return p, nil
}

func (p *pipes) closeChildEnds() {
	closeFiles(p.inR, p.outW, p.errW)
}

func (p *pipes) closeParentEnds() {
	closeFiles(p.inW, p.outR, p.errR)
}

func (p *pipes) closeAll() {
	p.closeChildEnds()
	p.closeParentEnds()
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}
