// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker delivers termination signals on a channel.
// Watch turns a repeated signal of the same kind into a context cancellation,
// so the first Ctrl-C lets a running child exit on its own and the second one stops everything.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

// New returns a channel that receives sigs, or SIGINT and SIGTERM when none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker: notify", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops delivery to ch.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
