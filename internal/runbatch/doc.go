// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a tree of commands and collects their results.
//
// Leaves are OSCommand (an external process) and FunctionCommand (an in-process step).
// SerialBatch runs its children in order and, by default, stops at the first failure:
// the children after it are recorded as skipped and never started.
// Every Runnable returns Results, which can be written as a tree with WriteResults.
package runbatch
