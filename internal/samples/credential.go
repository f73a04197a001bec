// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

import "log/slog"

const redacted = "[REDACTED]"

// Credential is the licence key handed to each sample on stdin.
// It formats and logs as a redacted placeholder.
type Credential string

var _ slog.LogValuer = Credential("")

// String implements fmt.Stringer.
func (c Credential) String() string {
	if c == "" {
		return ""
	}

	return redacted
}

// GoString keeps %#v redacted too.
func (c Credential) GoString() string {
	return c.String()
}

// LogValue implements slog.LogValuer.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

// Payload is the bytes written to a sample's stdin.
func (c Credential) Payload() []byte {
	return []byte(string(c) + "\n")
}
