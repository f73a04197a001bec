// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader captures a subprocess stream while it is being drained.
// The captured bytes are capped, and the last complete line is kept for progress messages.
package teereader
