// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"maps"
	"path/filepath"
)

// BaseCommand holds the fields shared by every Runnable. Embed it.
type BaseCommand struct {
	Label           string            // Label shown in progress and results
	Cwd             string            // Working directory
	RunsOnCondition RunCondition      // When to run relative to the previous sibling
	Env             map[string]string // Per-command environment overrides
	parent          Runnable
}

// NewBaseCommand creates a BaseCommand. A nil env is replaced by an empty map.
func NewBaseCommand(label, cwd string, runsOn RunCondition, env map[string]string) *BaseCommand {
	if env == nil {
		env = make(map[string]string)
	}

	return &BaseCommand{
		Label:           label,
		Cwd:             cwd,
		RunsOnCondition: runsOn,
		Env:             env,
	}
}

// GetLabel returns the label, or "Command" if unset.
func (c *BaseCommand) GetLabel() string {
	if c.Label == "" {
		return "Command"
	}

	return c.Label
}

// GetParent returns the enclosing batch.
func (c *BaseCommand) GetParent() Runnable {
	return c.parent
}

// SetParent sets the enclosing batch.
func (c *BaseCommand) SetParent(parent Runnable) {
	c.parent = parent
}

// SetCwd resolves the working directory against cwd.
// An empty Cwd takes cwd, a relative one is joined onto it, an absolute one is kept.
func (c *BaseCommand) SetCwd(cwd string) {
	switch {
	case cwd == "":
		return
	case c.Cwd == "":
		c.Cwd = cwd
	case !filepath.IsAbs(c.Cwd):
		c.Cwd = filepath.Join(cwd, c.Cwd)
	}
}

// InheritEnv copies variables from env that are not already set on the command.
func (c *BaseCommand) InheritEnv(env map[string]string) {
	if len(env) == 0 {
		return
	}

	if c.Env == nil {
		c.Env = maps.Clone(env)
		return
	}

	for k, v := range env {
		if _, ok := c.Env[k]; !ok {
			c.Env[k] = v
		}
	}
}

// ShouldRun applies RunsOnCondition to the previous sibling's outcome.
func (c *BaseCommand) ShouldRun(prev PreviousCommandStatus) ShouldRunAction {
	switch c.RunsOnCondition {
	case RunOnAlways:
		return ShouldRunActionRun
	case RunOnError:
		if prev.State != ResultStatusError {
			return ShouldRunActionSkip
		}

		return ShouldRunActionRun
	default:
		if prev.State == ResultStatusError {
			return ShouldRunActionError
		}

		return ShouldRunActionRun
	}
}
