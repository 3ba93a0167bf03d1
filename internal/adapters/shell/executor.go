// Package shell provides the process adapters: the recipe executor, the backtick
// runner, the cygpath translator and the external process runner.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/jot/internal/adapters/render"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

// interruptGrace is how long a child may keep running after it was interrupted.
const interruptGrace = 5 * time.Second

// Executor implements ports.Executor and ports.BacktickRunner using os/exec.
type Executor struct {
	logger     ports.Logger
	translator ports.PathTranslator

	mu     sync.RWMutex
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

// NewExecutor creates a new Executor bound to the process's standard streams.
// translator may be nil on hosts that never translate interpreter paths.
func NewExecutor(logger ports.Logger, translator ports.PathTranslator) *Executor {
	return &Executor{
		logger:     logger,
		translator: translator,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

// SetOutput redirects the streams handed to child processes and the command echo.
func (e *Executor) SetOutput(stdout, stderr io.Writer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stdout = stdout
	e.stderr = stderr
}

// SetColor enables styling of echoed command lines.
func (e *Executor) SetColor(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.color = enabled
}

func (e *Executor) streams() (io.Reader, io.Writer, io.Writer, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stdin, e.stdout, e.stderr, e.color
}

// Execute runs cmd to completion.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command) error {
	if cmd.IsScript() {
		return e.runScript(ctx, cmd)
	}
	return e.runLines(ctx, cmd)
}

func (e *Executor) runLines(ctx context.Context, cmd *domain.Command) error {
	shell := cmd.Shell
	if len(shell) == 0 {
		shell = domain.DefaultShell
	}
	env := resolveEnvironment(os.Environ(), cmd.Env)
	stdin, stdout, stderr, color := e.streams()
	echo := render.NewRenderer(stderr, color).NewStyle().Bold(true)

	for _, line := range cmd.Lines {
		if !line.Quiet {
			_, _ = fmt.Fprintln(stderr, echo.Render(line.Text))
		}

		proc := commandFor(ctx, shell[0], env, slices.Concat(shell[1:], []string{line.Text})...)
		proc.Dir = cmd.WorkDir
		proc.Stdin, proc.Stdout, proc.Stderr = stdin, stdout, stderr

		if err := proc.Start(); err != nil {
			return &domain.IOError{Recipe: cmd.Recipe, Err: err}
		}
		out := outcome(proc.Wait())
		if out == nil {
			continue
		}
		if out.Kind == domain.OutputIO {
			return &domain.IOError{Recipe: cmd.Recipe, Err: out.Err}
		}

		err := recipeError(out, cmd, line.Number)
		var code *domain.CodeError
		if line.Infallible && errors.As(err, &code) {
			e.logger.Warn(err.Error() + ", ignoring")
			continue
		}
		return err
	}
	return nil
}

func (e *Executor) runScript(ctx context.Context, cmd *domain.Command) error {
	dir, err := os.MkdirTemp(cmd.TempDir, "jot-")
	if err != nil {
		return &domain.TmpdirIOError{Recipe: cmd.Recipe, Err: err}
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, scriptName(cmd.Recipe))
	if err := os.WriteFile(path, []byte(cmd.Script), 0o600); err != nil {
		return &domain.TmpdirIOError{Recipe: cmd.Recipe, Err: err}
	}
	if err := os.Chmod(path, 0o700); err != nil { //nolint:gosec // the script must be executable by its owner
		return &domain.TmpdirIOError{Recipe: cmd.Recipe, Err: err}
	}

	interpreter, err := e.interpreter(ctx, cmd)
	if err != nil {
		return err
	}

	var args []string
	if cmd.Shebang.Argument != "" {
		args = append(args, cmd.Shebang.Argument)
	}
	args = append(args, path)

	env := resolveEnvironment(os.Environ(), cmd.Env)
	stdin, stdout, stderr, _ := e.streams()
	proc := commandFor(ctx, interpreter, env, args...)
	proc.Dir = cmd.WorkDir
	proc.Stdin, proc.Stdout, proc.Stderr = stdin, stdout, stderr

	if err := proc.Start(); err != nil {
		return &domain.ShebangError{
			Recipe:   cmd.Recipe,
			Command:  cmd.Shebang.Interpreter,
			Argument: cmd.Shebang.Argument,
			Err:      err,
		}
	}
	if out := outcome(proc.Wait()); out != nil {
		if out.Kind == domain.OutputIO {
			return &domain.IOError{Recipe: cmd.Recipe, Err: out.Err}
		}
		return recipeError(out, cmd, 0)
	}
	return nil
}

// interpreter returns the program for a script, translating POSIX-style paths on Windows.
func (e *Executor) interpreter(ctx context.Context, cmd *domain.Command) (string, error) {
	name := cmd.Shebang.Interpreter
	if runtime.GOOS != "windows" || e.translator == nil || !strings.HasPrefix(name, "/") {
		return name, nil
	}
	translated, err := e.translator.Translate(ctx, name)
	if err != nil {
		var out *domain.OutputError
		if !errors.As(err, &out) {
			out = &domain.OutputError{Kind: domain.OutputIO, Err: err}
		}
		return "", &domain.CygpathError{Recipe: cmd.Recipe, Output: out}
	}
	return translated, nil
}

func scriptName(recipe string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, recipe)
	if name == "" {
		return "script"
	}
	return name
}

// commandFor builds an exec.Cmd that resolves name against the PATH in env and is
// interrupted rather than killed when ctx is canceled.
func commandFor(ctx context.Context, name string, env []string, args ...string) *exec.Cmd {
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	if len(proc.Args) > 0 {
		proc.Args[0] = name
	}
	proc.Env = env
	proc.Cancel = func() error {
		return proc.Process.Signal(os.Interrupt)
	}
	proc.WaitDelay = interruptGrace
	return proc
}

// resolveEnvironment overlays the exported variables on the inherited environment.
func resolveEnvironment(sysEnv []string, exports map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(exports))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range exports {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
