// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Validate reports every problem in the configuration.
// The returned error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var result *multierror.Error

	required := []struct {
		name, value string
	}{
		{"root", c.Root},
		{"credential_env", c.CredentialEnv},
		{"build_tool", c.BuildTool},
		{"vcs_tool", c.VCSTool},
		{"java", c.Java},
		{"jar_suffix", c.JarSuffix},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			result = multierror.Append(result, fmt.Errorf("%s must not be empty", r.name))
		}
	}

	if strings.ContainsAny(c.CredentialEnv, "= ") {
		result = multierror.Append(result, fmt.Errorf("credential_env %q is not a valid variable name", c.CredentialEnv))
	}

	if len(c.Samples) == 0 {
		result = multierror.Append(result, errors.New("samples must not be empty"))
	}

	seen := make(map[string]int, len(c.Samples))

	for i, s := range c.Samples {
		clean := filepath.Clean(filepath.FromSlash(s))

		switch {
		case strings.TrimSpace(s) == "":
			result = multierror.Append(result, fmt.Errorf("samples[%d] is empty", i))
			continue
		case filepath.IsAbs(clean):
			result = multierror.Append(result, fmt.Errorf("samples[%d] %q must be relative to the root", i, s))
			continue
		case clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)):
			result = multierror.Append(result, fmt.Errorf("samples[%d] %q must be inside the root", i, s))
			continue
		}

		if j, ok := seen[clean]; ok {
			result = multierror.Append(result, fmt.Errorf("samples[%d] %q duplicates samples[%d]", i, s, j))
			continue
		}

		seen[clean] = i
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}
