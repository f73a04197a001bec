// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The level is shared through LevelVar and initialised from the environment
// variable <EXECUTABLE>_LOG_LEVEL, e.g. SAMPLERUNNER_LOG_LEVEL=DEBUG.
// The default handler is PrettyHandler, which writes one human-readable line per record.
package ctxlog
