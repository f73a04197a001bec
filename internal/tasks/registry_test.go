// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tasks

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/samplerunner/internal/config"
	"github.com/matt-FFFFFF/samplerunner/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopBuild(_ context.Context, _ *Env) (runbatch.Runnable, error) {
	return &runbatch.FunctionCommand{BaseCommand: runbatch.NewBaseCommand("nop", "", runbatch.RunOnSuccess, nil)}, nil
}

func newTestRegistry(t *testing.T, tasks ...Task) *Registry {
	t.Helper()

	r := NewRegistry()
	for _, task := range tasks {
		require.NoError(t, r.Register(task))
	}

	return r
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Task{Name: "a", Build: nopBuild}))
	require.ErrorIs(t, r.Register(Task{Name: "a", Build: nopBuild}), ErrDuplicateTask)
	require.ErrorIs(t, r.Register(Task{Name: "", Build: nopBuild}), ErrInvalidTask)
	require.ErrorIs(t, r.Register(Task{Name: "b"}), ErrInvalidTask)

	require.Len(t, r.All(), 1)
	assert.Equal(t, "a", r.All()[0].Name)
}

func TestPlan(t *testing.T) {
	r := newTestRegistry(t,
		Task{Name: "clean", Build: nopBuild},
		Task{Name: "build", Prerequisites: []string{"clean"}, Build: nopBuild},
		Task{Name: "lint", Build: nopBuild},
		Task{Name: "release", Prerequisites: []string{"build", "lint", "clean"}, Build: nopBuild},
	)

	tests := map[string][]string{
		"clean":   {"clean"},
		"build":   {"clean", "build"},
		"release": {"clean", "build", "lint", "release"},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := r.Plan(name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestPlan_Unknown(t *testing.T) {
	r := newTestRegistry(t, Task{Name: "build", Prerequisites: []string{"generate"}, Build: nopBuild})

	_, err := r.Plan("deploy")
	require.ErrorIs(t, err, ErrUnknownTask)

	_, err = r.Plan("build")
	require.ErrorIs(t, err, ErrUnknownTask)
	assert.ErrorContains(t, err, "generate (required by build)")
}

func TestPlan_Cycle(t *testing.T) {
	r := newTestRegistry(t,
		Task{Name: "a", Prerequisites: []string{"b"}, Build: nopBuild},
		Task{Name: "b", Prerequisites: []string{"c"}, Build: nopBuild},
		Task{Name: "c", Prerequisites: []string{"a"}, Build: nopBuild},
		Task{Name: "self", Prerequisites: []string{"self"}, Build: nopBuild},
	)

	_, err := r.Plan("a")
	require.ErrorIs(t, err, ErrCircularDependency)
	assert.ErrorContains(t, err, "a -> b -> c -> a")

	_, err = r.Plan("self")
	require.ErrorIs(t, err, ErrCircularDependency)
	assert.ErrorContains(t, err, "self -> self")
}

func TestRun_BuildErrorStopsEverything(t *testing.T) {
	ran := false

	r := newTestRegistry(t,
		Task{Name: "first", Build: func(_ context.Context, _ *Env) (runbatch.Runnable, error) {
			return &runbatch.FunctionCommand{
				BaseCommand: runbatch.NewBaseCommand("first", "", runbatch.RunOnSuccess, nil),
				Func: func(_ context.Context, _ string) error {
					ran = true
					return nil
				},
			}, nil
		}},
		Task{Name: "second", Prerequisites: []string{"first"}, Build: func(_ context.Context, _ *Env) (runbatch.Runnable, error) {
			return nil, config.ErrInvalidConfig
		}},
	)

	res, err := r.Run(context.Background(), "second", &Env{Config: config.Defaults()})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Nil(t, res)
	assert.False(t, ran)
}

func TestDefaultRegistry(t *testing.T) {
	var names []string
	for _, task := range Default.All() {
		names = append(names, task.Name)
		assert.NotEmpty(t, task.Usage)
	}

	assert.Equal(t, []string{TaskClean, TaskBuild, TaskRun}, names)

	plan, err := Default.Plan(TaskBuild)
	require.NoError(t, err)
	assert.Equal(t, []string{TaskClean, TaskBuild}, plan)

	plan, err = Default.Plan(TaskRun)
	require.NoError(t, err)
	assert.Equal(t, []string{TaskRun}, plan)
}

func TestEnvironMap(t *testing.T) {
	m := EnvironMap([]string{"A=1", "B=x=y", "=C:=C:\\", "broken", "A=2"})
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y"}, m)
}

func TestEnvLookup(t *testing.T) {
	env := &Env{Environ: map[string]string{"Path": `C:\Windows`}}

	env.GOOS = "windows"
	v, ok := env.Lookup("PATH")
	assert.True(t, ok)
	assert.Equal(t, `C:\Windows`, v)

	env.GOOS = "linux"
	_, ok = env.Lookup("PATH")
	assert.False(t, ok)
}
