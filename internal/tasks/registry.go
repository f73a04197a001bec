// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/samplerunner/internal/ctxlog"
	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
)

var (
	// ErrDuplicateTask is returned when a task name is registered twice.
	ErrDuplicateTask = errors.New("task already registered")
	// ErrInvalidTask is returned when a task has no name or no builder.
	ErrInvalidTask = errors.New("invalid task")
	// ErrUnknownTask is returned when a task or prerequisite is not registered.
	ErrUnknownTask = errors.New("unknown task")
	// ErrCircularDependency is returned when prerequisites form a cycle.
	ErrCircularDependency = errors.New("circular task dependency")
	// ErrTaskFailed is returned when a planned task did not succeed.
	ErrTaskFailed = errors.New("task failed")
)

// BuildFunc turns a task into a runnable for env.
type BuildFunc func(ctx context.Context, env *Env) (runbatch.Runnable, error)

// Task is a named unit of work.
type Task struct {
	Name          string
	Usage         string
	Prerequisites []string // Run before this task, in order
	Build         BuildFunc
}

// Registry holds tasks by name.
type Registry struct {
	tasks map[string]Task
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[string]Task),
	}
}

// Register adds t to the registry.
func (r *Registry) Register(t Task) error {
	if t.Name == "" || t.Build == nil {
		return fmt.Errorf("%w: %q needs a name and a builder", ErrInvalidTask, t.Name)
	}

	if _, ok := r.tasks[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name)
	}

	t.Prerequisites = slices.Clone(t.Prerequisites)
	r.tasks[t.Name] = t
	r.order = append(r.order, t.Name)

	return nil
}

// All returns the tasks in registration order.
func (r *Registry) All() []Task {
	out := make([]Task, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.tasks[n])
	}

	return out
}

// Plan returns name and its prerequisites in the order they must run.
// Each task appears once.
func (r *Registry) Plan(name string) ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	colour := make(map[string]int, len(r.tasks))
	plan := make([]string, 0, len(r.tasks))

	var (
		stack []string
		visit func(n, requiredBy string) error
	)

	visit = func(n, requiredBy string) error {
		t, ok := r.tasks[n]
		if !ok {
			if requiredBy != "" {
				return fmt.Errorf("%w: %s (required by %s)", ErrUnknownTask, n, requiredBy)
			}

			return fmt.Errorf("%w: %s", ErrUnknownTask, n)
		}

		switch colour[n] {
		case black:
			return nil
		case gray:
			i := slices.Index(stack, n)
			cycle := append(slices.Clone(stack[i:]), n)

			return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(cycle, " -> "))
		}

		colour[n] = gray
		stack = append(stack, n)

		for _, p := range t.Prerequisites {
			if err := visit(p, n); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		colour[n] = black
		plan = append(plan, n)

		return nil
	}

	if err := visit(name, ""); err != nil {
		return nil, err
	}

	return plan, nil
}

// Run plans and builds name and its prerequisites, then runs them in order.
// A build error is returned before anything runs.
// If any task fails the results are returned together with an error wrapping ErrTaskFailed.
func (r *Registry) Run(ctx context.Context, name string, env *Env) (runbatch.Results, error) {
	plan, err := r.Plan(name)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "task plan", "task", name, "plan", plan)

	cmds := make([]runbatch.Runnable, 0, len(plan))

	for _, n := range plan {
		rb, err := r.tasks[n].Build(ctx, env)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", n, err)
		}

		cmds = append(cmds, rb)
	}

	cwd, err := env.root()
	if err != nil {
		return nil, err
	}

	batch := runbatch.NewSerialBatch(runbatch.NewBaseCommand(name, cwd, runbatch.RunOnSuccess, nil), cmds...)

	results := batch.Run(ctx)
	if results.HasError() {
		return results, errors.Join(
			fmt.Errorf("%w: %s", ErrTaskFailed, name),
			&runbatch.BatchError{FailedResults: results.Failed()},
		)
	}

	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("%w: %s: %w", ErrTaskFailed, name, err)
	}

	return results, nil
}
