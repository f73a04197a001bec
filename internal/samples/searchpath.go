// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package samples

// SearchPathOverride returns the environment overrides for a sample child process.
// On Windows the library directory is appended to PATH with a ';' separator so the
// JVM can load the native libraries. Other platforms rely on -Djava.library.path alone
// and get no override.
func SearchPathOverride(goos, currentPath, libDir string) map[string]string {
	if goos != "windows" {
		return nil
	}

	return map[string]string{
		"PATH": currentPath + ";" + libDir,
	}
}
