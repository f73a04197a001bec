// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tasks holds the task registry and the built-in clean, build and run tasks.
//
// A task declares the tasks it depends on. Running a task plans its prerequisites
// depth first, builds every planned task, then runs them in order and stops at the
// first failure.
package tasks
