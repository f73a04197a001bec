// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdflags holds the flags shared by the samplerunner subcommands.
package cmdflags

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/samplerunner/internal/config"
	"github.com/matt-FFFFFF/samplerunner/internal/tasks"
	"github.com/urfave/cli/v3"
)

const (
	// ConfigFlag names the configuration file URL flag.
	ConfigFlag = "config"
	// RootFlag names the sample root flag.
	RootFlag = "root"
)

// ConfigFlags returns the flags that select the configuration.
func ConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage: "Load configuration from this path or URL. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Defaults to samplerunner.yaml, samplerunner.yml or samplerunner.hcl in the root directory.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      RootFlag,
			Aliases:   []string{"r"},
			Usage:     "Directory containing the samples. Overrides the configuration file.",
			TakesFile: true,
			OnlyOnce:  true,
		},
	}
}

// LoadConfig loads the configuration selected by the flags of cmd.
func LoadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	return config.Load(ctx, config.LoadOptions{
		URL:     cmd.String(ConfigFlag),
		Root:    cmd.String(RootFlag),
		Environ: tasks.EnvironMap(os.Environ()),
	})
}
