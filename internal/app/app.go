// Package app implements the application layer for jot.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/jot/internal/adapters/telemetry"
	"go.trai.ch/jot/internal/adapters/telemetry/progrock"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
	"go.trai.ch/jot/internal/engine/evaluator"
	"go.trai.ch/jot/internal/engine/planner"
	"go.trai.ch/jot/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

const dotenvFilename = ".env"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	runner       ports.BacktickRunner
	dotenv       ports.DotenvLoader
	process      ports.ProcessRunner
	logger       ports.Logger
	tracer       ports.Tracer

	stdout  io.Writer
	stderr  io.Writer
	environ []string
	workDir string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	runner ports.BacktickRunner,
	dotenv ports.DotenvLoader,
	process ports.ProcessRunner,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		runner:       runner,
		dotenv:       dotenv,
		process:      process,
		logger:       log,
		tracer:       tracer,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects listings, dumps and dry-run echo.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithEnviron replaces the process environment seen by recipes.
// This is primarily used for testing.
func (a *App) WithEnviron(environ []string) *App {
	a.environ = environ
	return a
}

// WithWorkDir sets the directory the recipe file search starts from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// colorSetter is implemented by executors that style echoed commands.
type colorSetter interface {
	SetColor(enabled bool)
}

// session is a loaded recipe file with the settings and scopes derived from it.
type session struct {
	table     *domain.RecipeTable
	settings  domain.Settings
	evaluator *evaluator.Evaluator
	base      *domain.Scope
}

// Run plans and executes the recipes named by words.
// Leading NAME=VALUE words override variables.
func (a *App) Run(ctx context.Context, words []string, settings domain.Settings) error {
	s, err := a.open(settings)
	if err != nil {
		return err
	}
	return a.run(ctx, s, words)
}

func (a *App) run(ctx context.Context, s *session, words []string) error {
	overrides, invocations := parseArguments(s.table, words, s.settings.Overrides)
	plan, err := planner.New(s.evaluator).Plan(ctx, planner.Input{
		Table:       s.table,
		Base:        s.base,
		Overrides:   overrides,
		Invocations: invocations,
	})
	if err != nil {
		return err
	}

	return a.execute(ctx, s, plan)
}

func (a *App) execute(ctx context.Context, s *session, plan *domain.Plan) error {
	if c, ok := a.executor.(colorSetter); ok {
		c.SetColor(s.settings.Color)
	}

	tracer := a.tracer
	switch {
	case s.settings.DryRun:
		tracer = telemetry.NewNoOpTracer()
	case s.settings.Trace:
		tape := progrock.New(a.stderr)
		defer func() {
			if err := tape.Close(); err != nil {
				a.logger.Error(zerr.Wrap(err, "failed to close trace"))
			}
		}()
		tracer = tape
	}

	a.logger.Info(fmt.Sprintf("running %d recipe(s)", len(plan.Entries)))
	sched := scheduler.NewScheduler(a.executor, tracer)
	return sched.Run(ctx, plan, s.evaluator, scheduler.Options{
		DryRun: s.settings.DryRun,
		Echo:   a.stderr,
	})
}

// open finds and loads the recipe file, then prepares the evaluator and base scope.
func (a *App) open(settings domain.Settings) (*session, error) {
	cwd, err := a.cwd()
	if err != nil {
		return nil, err
	}
	path, err := a.recipeFile(cwd, settings)
	if err != nil {
		return nil, err
	}

	table, err := a.configLoader.Load(path)
	if err != nil {
		return nil, err
	}
	settings = settings.Merge(table.Settings)

	dir := filepath.Dir(table.Path)
	base, err := a.baseScope(dir, settings)
	if err != nil {
		return nil, err
	}

	executable, _ := os.Executable()
	ev := evaluator.New(a.runner, evaluator.Config{
		Shell:         settings.ShellCommand(),
		WorkDir:       dir,
		InvocationDir: cwd,
		RecipeFile:    table.Path,
		Executable:    executable,
		TempDir:       settings.TempDir,
		Export:        settings.Export,
		Unstable:      settings.Unstable,
		Quiet:         settings.Quiet,
	})

	return &session{table: table, settings: settings, evaluator: ev, base: base}, nil
}

// baseScope layers the dotenv file, when enabled, over the process environment.
func (a *App) baseScope(dir string, settings domain.Settings) (*domain.Scope, error) {
	environ := a.environ
	if environ == nil {
		environ = os.Environ()
	}
	env := domain.EnvironmentLayer(environ)
	if !settings.DotenvLoad {
		return domain.NewScope(env), nil
	}

	path, required := filepath.Join(dir, dotenvFilename), false
	if settings.DotenvPath != "" {
		path, required = settings.DotenvPath, true
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
	}
	layer, err := a.dotenv.Load(path, required)
	if err != nil {
		return nil, err
	}
	return domain.NewScope(env, layer), nil
}

// recipeFile returns the --file path resolved against cwd, or the discovered recipe file.
func (a *App) recipeFile(cwd string, settings domain.Settings) (string, error) {
	if settings.File == "" {
		return a.configLoader.Discover(cwd)
	}
	if filepath.IsAbs(settings.File) {
		return settings.File, nil
	}
	return filepath.Join(cwd, settings.File), nil
}

// getenv looks name up in the environment recipes see.
func (a *App) getenv(name string) string {
	if a.environ == nil {
		return os.Getenv(name)
	}
	value, _ := domain.EnvironmentLayer(a.environ).Lookup(name)
	return value.Value
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}
