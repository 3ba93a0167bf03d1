// Package scheduler runs an execution plan one entry at a time.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

// Options control a single Run.
type Options struct {
	// DryRun prints each rendered body to Echo instead of running it.
	DryRun bool
	// Echo receives dry-run output.
	Echo io.Writer
}

// Scheduler executes plan entries in order and stops at the first failure.
type Scheduler struct {
	executor ports.Executor
	tracer   ports.Tracer

	mu     sync.RWMutex
	status map[string]domain.RunStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(executor ports.Executor, tracer ports.Tracer) *Scheduler {
	return &Scheduler{
		executor: executor,
		tracer:   tracer,
		status:   make(map[string]domain.RunStatus),
	}
}

// Run renders and executes every entry of plan. Entries never overlap, and an
// entry starts only after all earlier entries completed.
func (s *Scheduler) Run(ctx context.Context, plan *domain.Plan, renderer ports.Renderer, opts Options) error {
	s.initStatuses(plan)
	s.tracer.EmitPlan(ctx, plan.Names())

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runEntry(ctx, entry, renderer, opts); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) runEntry(ctx context.Context, entry domain.PlanEntry, renderer ports.Renderer, opts Options) error {
	name := entry.Recipe.Name.String()
	ctx, span := s.tracer.Start(ctx, name,
		ports.WithAttribute("recipe.key", entry.Key),
		ports.WithAttribute("recipe.arguments", strings.Join(entry.Arguments, " ")),
	)
	defer span.End()

	s.updateStatus(entry.Key, domain.StatusRunning)

	cmd, err := renderer.Render(ctx, entry.Recipe, entry.Scope)
	if err != nil {
		return s.fail(entry.Key, span, err)
	}

	if opts.DryRun {
		if err := printCommand(opts.Echo, cmd); err != nil {
			return s.fail(entry.Key, span, &domain.IOError{Recipe: name, Err: err})
		}
		s.updateStatus(entry.Key, domain.StatusSkipped)
		return nil
	}

	if err := s.executor.Execute(ctx, cmd); err != nil {
		return s.fail(entry.Key, span, err)
	}

	s.updateStatus(entry.Key, domain.StatusCompleted)
	return nil
}

func (s *Scheduler) fail(key string, span ports.Span, err error) error {
	span.RecordError(err)
	s.updateStatus(key, domain.StatusFailed)
	return err
}

// printCommand writes what the command would run, including quiet lines.
func printCommand(w io.Writer, cmd *domain.Command) error {
	if w == nil {
		return nil
	}
	if cmd.IsScript() {
		_, err := fmt.Fprintf(w, "#!%s\n%s\n", cmd.Shebang, cmd.Script)
		return err
	}
	for _, line := range cmd.Lines {
		if _, err := fmt.Fprintln(w, line.Text); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) initStatuses(plan *domain.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.status)
	for _, entry := range plan.Entries {
		s.status[entry.Key] = domain.StatusPending
	}
}

func (s *Scheduler) updateStatus(key string, status domain.RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[key] = status
}

// Statuses returns a copy of the entry statuses from the latest Run, keyed by entry key.
func (s *Scheduler) Statuses() map[string]domain.RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.status)
}
