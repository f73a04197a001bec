// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for console output.
// Output is plain when NO_COLOR is set, colored when FORCE_COLOR is set,
// and otherwise colored only if stdout is a terminal.
package color
