// Package planner resolves requested recipes and their dependencies into an execution plan.
package planner

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/engine/binder"
	"go.trai.ch/jot/internal/engine/evaluator"
)

// Input is everything needed to build a plan.
type Input struct {
	Table *domain.RecipeTable
	// Base holds the environment and dotenv layers under the global assignments.
	Base        *domain.Scope
	Overrides   map[string]string
	Invocations []domain.Invocation
}

// Planner builds execution plans.
type Planner struct {
	evaluator *evaluator.Evaluator
	binder    *binder.Binder
}

// New creates a Planner that evaluates through ev.
func New(ev *evaluator.Evaluator) *Planner {
	b := binder.New(ev)
	b.Export = ev.Config().Export
	return &Planner{evaluator: ev, binder: b}
}

// Plan validates the requested invocations and returns the ordered, deduplicated
// list of recipe runs. Nothing is evaluated before every requested name is known
// and the reachable dependency graph is known to be acyclic.
func (p *Planner) Plan(ctx context.Context, in Input) (*domain.Plan, error) {
	invocations, err := requested(in.Table, in.Invocations)
	if err != nil {
		return nil, err
	}
	if err := checkOverrides(in.Table, in.Overrides); err != nil {
		return nil, err
	}

	roots := make([]string, len(invocations))
	for i, inv := range invocations {
		roots[i] = inv.Recipe
	}
	if err := in.Table.CheckCycles(roots); err != nil {
		return nil, err
	}

	base := in.Base
	if base == nil {
		base = domain.NewScope()
	}
	globals, err := p.evaluator.EvaluateAssignments(ctx, in.Table.Assignments(), base, in.Overrides)
	if err != nil {
		return nil, err
	}

	b := &builder{
		planner: p,
		table:   in.Table,
		globals: base.With(globals),
		emitted: make(map[string]bool),
	}
	for _, inv := range invocations {
		recipe, _ := in.Table.Lookup(inv.Recipe)
		bound, err := p.binder.Bind(ctx, recipe, inv.Arguments, b.globals, inv.Implicit)
		if err != nil {
			return nil, err
		}
		if err := b.visit(ctx, recipe, inv.Arguments, bound); err != nil {
			return nil, err
		}
	}

	return &domain.Plan{Entries: b.entries, Globals: b.globals}, nil
}

// requested resolves the default recipe and reports every unknown name at once.
func requested(table *domain.RecipeTable, invocations []domain.Invocation) ([]domain.Invocation, error) {
	if len(invocations) == 0 {
		if table.Len() == 0 {
			return nil, &domain.NoRecipesError{}
		}
		recipe, ok := table.Default()
		if !ok {
			return nil, &domain.NoDefaultRecipeError{}
		}
		return []domain.Invocation{{Recipe: recipe.Name.String(), Implicit: true}}, nil
	}

	var unknown []string
	for _, inv := range invocations {
		if _, ok := table.Lookup(inv.Recipe); !ok && !slices.Contains(unknown, inv.Recipe) {
			unknown = append(unknown, inv.Recipe)
		}
	}
	if len(unknown) > 0 {
		return nil, &domain.UnknownRecipesError{
			Recipes: unknown,
			Suggest: domain.Suggest(unknown[0], table.Names()),
		}
	}
	return invocations, nil
}

func checkOverrides(table *domain.RecipeTable, overrides map[string]string) error {
	var unknown []string
	for name := range overrides {
		if _, ok := table.Assignment(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return &domain.UnknownOverridesError{Overrides: unknown}
}

type builder struct {
	planner *Planner
	table   *domain.RecipeTable
	globals *domain.Scope
	emitted map[string]bool
	entries []domain.PlanEntry
}

// visit emits recipe's dependencies depth-first in declaration order, then recipe itself.
func (b *builder) visit(ctx context.Context, recipe *domain.Recipe, args []string, bound *binder.Bound) error {
	identity := identityOf(recipe, bound)
	if b.emitted[identity] {
		return nil
	}

	for _, dep := range recipe.Dependencies {
		target, ok := b.table.Lookup(dep.Recipe.String())
		if !ok {
			return &domain.InternalError{
				Message: fmt.Sprintf("recipe `%s` depends on missing recipe `%s`", recipe.Name, dep.Recipe),
			}
		}

		depArgs := make([]string, len(dep.Arguments))
		for i, expr := range dep.Arguments {
			value, err := b.planner.evaluator.Evaluate(ctx, expr, bound.Scope)
			if err != nil {
				return err
			}
			depArgs[i] = value
		}

		depBound, err := b.planner.binder.Bind(ctx, target, depArgs, b.globals, false)
		if err != nil {
			return err
		}
		if err := b.visit(ctx, target, depArgs, depBound); err != nil {
			return err
		}
	}

	b.emitted[identity] = true
	b.entries = append(b.entries, domain.PlanEntry{
		Recipe:    recipe,
		Arguments: args,
		Scope:     bound.Scope,
		Key:       fmt.Sprintf("%016x", xxhash.Sum64String(identity)),
	})
	return nil
}

// identityOf keys a run by recipe name and resolved arguments. Variadic arguments are
// kept separate and counted so that `a b` and `"a b"` stay distinct.
func identityOf(recipe *domain.Recipe, bound *binder.Bound) string {
	values := bound.Values
	if n := len(recipe.Parameters); n > 0 && recipe.Parameters[n-1].IsVariadic() && len(values) >= n {
		values = values[:n-1]
	}
	parts := make([]string, 0, len(values)+len(bound.Variadic)+2)
	parts = append(parts, recipe.Name.String())
	parts = append(parts, values...)
	parts = append(parts, strconv.Itoa(len(bound.Variadic)))
	parts = append(parts, bound.Variadic...)
	return strings.Join(parts, "\x00")
}
