package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/runr/log"
	"github.com/ardnew/runr/pkg"
)

// Run executes a task or installed script with the given arguments.
type Run struct {
	Name string   `arg:"" optional:"" name:"task" help:"Task or script name"`
	Args []string `arg:"" optional:"" name:"args" help:"Arguments passed to the task" passthrough:""`

	NoSync bool `help:"Skip syncing the managed environment before running"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	name := r.Name
	if name == "" {
		name, err = pickTask(p)
		if err != nil {
			return err
		}
		if name == "" {
			// Picker dismissed without a selection.
			return nil
		}
	}

	task, err := p.Task(name)
	if err != nil {
		return err
	}

	if p.Managed() && !r.NoSync {
		log.DebugContext(ctx, "syncing environment",
			slog.String("project", p.Name),
		)

		if err := p.Sync(ctx); err != nil {
			return pkg.MakeErrorf("uv sync failed").Wrap(err)
		}
	}

	log.DebugContext(ctx, "running task",
		slog.String("task", name),
		slog.String("project", p.Name),
		slog.Int("args", len(r.Args)),
	)

	return task.Run(ctx, p, r.Args)
}
