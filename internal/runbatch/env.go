// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"maps"
	"runtime"
	"slices"
	"strings"
)

const goosWindows = "windows"

// MergeEnv returns base ("KEY=value" entries) with overrides applied.
// A key that already exists in base is replaced in place, so the child never sees duplicates.
// Keys compare case-insensitively on Windows.
func MergeEnv(base []string, overrides map[string]string) []string {
	return mergeEnv(base, overrides, runtime.GOOS == goosWindows)
}

func mergeEnv(base []string, overrides map[string]string, foldCase bool) []string {
	out := slices.Clone(base)
	if len(overrides) == 0 {
		return out
	}

	same := func(a, b string) bool {
		if foldCase {
			return strings.EqualFold(a, b)
		}

		return a == b
	}

	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		entry := k + "=" + overrides[k]
		replaced := false

		for i, kv := range out {
			name, _, _ := strings.Cut(kv, "=")
			if same(name, k) {
				out[i] = entry
				replaced = true

				break
			}
		}

		if !replaced {
			out = append(out, entry)
		}
	}

	return out
}
