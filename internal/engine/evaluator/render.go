package evaluator

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
)

// Render evaluates the body of a bound recipe into a command.
// A body whose first line is a shebang becomes a script; any other body becomes
// one command per logical line.
func (e *Evaluator) Render(ctx context.Context, recipe *domain.Recipe, scope *domain.Scope) (*domain.Command, error) {
	cmd := &domain.Command{
		Recipe:        recipe.Name.String(),
		Shell:         e.cfg.Shell,
		TempDir:       e.cfg.TempDir,
		WorkDir:       e.workDir(recipe),
		Env:           scope.Exports(),
		NoExitMessage: recipe.Attributes.NoExitMessage,
	}

	if recipe.IsScript() {
		return e.renderScript(ctx, recipe, scope, cmd)
	}
	return e.renderLines(ctx, recipe, scope, cmd)
}

func (e *Evaluator) workDir(recipe *domain.Recipe) string {
	dir := recipe.Attributes.WorkingDirectory
	switch {
	case dir == "":
		return e.cfg.WorkDir
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(e.cfg.WorkDir, dir)
	}
}

func (e *Evaluator) renderScript(
	ctx context.Context,
	recipe *domain.Recipe,
	scope *domain.Scope,
	cmd *domain.Command,
) (*domain.Command, error) {
	lines := make([]string, len(recipe.Body))
	for i, line := range recipe.Body {
		text, err := e.RenderLine(ctx, line, scope)
		if err != nil {
			return nil, err
		}
		lines[i] = text
	}

	shebang, ok := domain.ParseShebang(lines[0])
	if !ok {
		return nil, &domain.InternalError{
			Message: "shebang line of recipe `" + cmd.Recipe + "` names no interpreter",
		}
	}
	cmd.Shebang = shebang
	cmd.Script = strings.Join(lines[1:], "\n")
	return cmd, nil
}

func (e *Evaluator) renderLines(
	ctx context.Context,
	recipe *domain.Recipe,
	scope *domain.Scope,
	cmd *domain.Command,
) (*domain.Command, error) {
	var (
		text      strings.Builder
		first     = -1
		continued bool
	)

	for i, line := range recipe.Body {
		rendered, err := e.RenderLine(ctx, line, scope)
		if err != nil {
			return nil, err
		}
		if continued {
			rendered = strings.TrimLeft(rendered, " \t")
		}
		if first < 0 {
			first = i
		}

		if line.IsContinuation() && i < len(recipe.Body)-1 {
			text.WriteString(strings.TrimSuffix(rendered, `\`))
			continued = true
			continue
		}
		text.WriteString(rendered)

		if commandLine, ok := e.commandLine(recipe, first, text.String()); ok {
			cmd.Lines = append(cmd.Lines, commandLine)
		}
		text.Reset()
		first = -1
		continued = false
	}
	return cmd, nil
}

// commandLine strips the sigils declared in the source prefix of the first physical line.
func (e *Evaluator) commandLine(recipe *domain.Recipe, first int, text string) (domain.CommandLine, bool) {
	line := recipe.Body[first]
	prefix := line.Prefix()

	var quietSigil, infallible bool
	for len(prefix) > 0 {
		switch {
		case prefix[0] == '@' && !quietSigil:
			quietSigil = true
		case prefix[0] == '-' && !infallible:
			infallible = true
		default:
			prefix = ""
			continue
		}
		prefix = prefix[1:]
		text = text[1:]
	}

	if strings.TrimSpace(text) == "" {
		return domain.CommandLine{}, false
	}

	number := line.Number
	if number == 0 {
		number = first + 1
	}
	return domain.CommandLine{
		Text:       text,
		Number:     number,
		Quiet:      recipe.Attributes.Quiet != quietSigil || e.cfg.Quiet,
		Infallible: infallible,
	}, true
}
