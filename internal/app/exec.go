package app

import (
	"context"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

// Exec runs an arbitrary command in the recipe file's directory with the exported
// variables in its environment.
func (a *App) Exec(ctx context.Context, settings domain.Settings, command []string) error {
	if len(command) == 0 {
		return domain.ErrNoCommand
	}

	s, err := a.open(settings)
	if err != nil {
		return err
	}

	globals, err := s.evaluator.EvaluateAssignments(ctx, s.table.Assignments(), s.base, s.settings.Overrides)
	if err != nil {
		return err
	}

	binary, args := command[0], command[1:]
	status, err := a.process.Run(ctx, &ports.Process{
		Program: binary,
		Args:    args,
		Dir:     s.evaluator.Config().WorkDir,
		Env:     s.base.With(globals).Exports(),
	})
	if err != nil {
		return &domain.CommandInvokeError{Binary: binary, Arguments: args, Err: err}
	}
	if status != 0 {
		return &domain.CommandStatusError{Binary: binary, Arguments: args, Status: status}
	}
	return nil
}
