package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

const defaultEditor = "vim"

// Edit opens the recipe file in $VISUAL, $EDITOR or vim.
func (a *App) Edit(ctx context.Context, settings domain.Settings) error {
	cwd, err := a.cwd()
	if err != nil {
		return err
	}
	path, err := a.recipeFile(cwd, settings)
	if err != nil {
		return err
	}

	editor := a.getenv("VISUAL")
	if editor == "" {
		editor = a.getenv("EDITOR")
	}
	if editor == "" {
		editor = defaultEditor
	}

	status, err := a.process.Run(ctx, &ports.Process{
		Program: editor,
		Args:    []string{path},
		Dir:     filepath.Dir(path),
	})
	if err != nil {
		return &domain.EditorInvokeError{Editor: editor, Err: err}
	}
	if status != 0 {
		return &domain.EditorStatusError{Editor: editor, Status: status}
	}
	return nil
}
