// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list provides the command that shows the configured samples.
package list

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/samplerunner/cmd/samplerunner/cmdflags"
	"github.com/matt-FFFFFF/samplerunner/internal/samples"
	"github.com/urfave/cli/v3"
)

// ErrWriteList is returned when the table cannot be written.
var ErrWriteList = errors.New("failed to write sample list")

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// ListCmd shows the samples in the order they are processed.
var ListCmd = &cli.Command{
	Name:        "list",
	Usage:       "List the samples in processing order",
	Description: "Show each sample's short name, directory and archive as a table.",
	Flags:       cmdflags.ConfigFlags(),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := cmdflags.LoadConfig(ctx, cmd)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(cmd.Root().Writer, Render(samples.List(cfg))); err != nil {
			return errors.Join(ErrWriteList, err)
		}

		return nil
	},
}

// Render returns the samples as a table.
func Render(list []samples.Sample) string {
	rows := make([][]string, 0, len(list))
	for i, s := range list {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, s.Entry, s.Archive})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers("#", "NAME", "DIRECTORY", "ARCHIVE").
		Rows(rows...)

	return t.Render()
}
