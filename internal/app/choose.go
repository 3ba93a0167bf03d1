package app

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

const (
	chooserEnv     = "JOT_CHOOSER"
	defaultChooser = "fzf --multi"
)

// Choose pipes the public recipes that take no arguments to an interactive chooser
// and runs whatever it selects.
func (a *App) Choose(ctx context.Context, settings domain.Settings, chooser string) error {
	s, err := a.open(settings)
	if err != nil {
		return err
	}

	var names []string
	for _, recipe := range publicRecipes(s.table) {
		if recipe.MinArguments() == 0 {
			names = append(names, recipe.Name.String())
		}
	}
	if len(names) == 0 {
		return &domain.NoChoosableRecipesError{}
	}

	if chooser == "" {
		chooser = a.getenv(chooserEnv)
	}
	if chooser == "" {
		chooser = defaultChooser
	}

	shell := s.settings.ShellCommand()
	var selection bytes.Buffer
	status, err := a.process.Run(ctx, &ports.Process{
		Program: shell[0],
		Args:    append(shell[1:], chooser),
		Dir:     s.evaluator.Config().WorkDir,
		Stdin:   strings.NewReader(strings.Join(names, "\n") + "\n"),
		Stdout:  &selection,
	})
	if err != nil {
		var pipe *ports.PipeError
		if errors.As(err, &pipe) {
			if pipe.Direction == ports.PipeStdin {
				return &domain.ChooserWriteError{Chooser: chooser, Err: pipe.Err}
			}
			return &domain.ChooserReadError{Chooser: chooser, Err: pipe.Err}
		}
		return &domain.ChooserInvokeError{Shell: shell, Chooser: chooser, Err: err}
	}
	if status != 0 {
		return &domain.ChooserStatusError{Chooser: chooser, Status: status}
	}

	return a.run(ctx, s, strings.Fields(selection.String()))
}
