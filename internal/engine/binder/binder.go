// Package binder matches caller arguments to recipe parameters.
package binder

import (
	"context"
	"strings"

	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
)

// Bound is the result of binding: the scope for the recipe body and the
// value each parameter received.
type Bound struct {
	Scope *domain.Scope
	// Values holds one entry per parameter. A variadic parameter's arguments are
	// joined with single spaces; Variadic keeps them separate.
	Values   []string
	Variadic []string
}

// Binder binds arguments using an evaluator for parameter defaults.
type Binder struct {
	evaluator ports.ExpressionEvaluator
	// Export marks every parameter as exported.
	Export bool
}

// New creates a Binder.
func New(evaluator ports.ExpressionEvaluator) *Binder {
	return &Binder{evaluator: evaluator}
}

// Bind validates the argument count and binds args to recipe's parameters
// in a new layer pushed onto scope.
//
// Defaults are evaluated only for parameters the caller left out, in a scope that
// sees the caller scope plus the parameters bound before them.
func (b *Binder) Bind(
	ctx context.Context,
	recipe *domain.Recipe,
	args []string,
	scope *domain.Scope,
	implicit bool,
) (*Bound, error) {
	if err := Check(recipe, len(args), implicit); err != nil {
		return nil, err
	}

	bound := &Bound{Values: make([]string, 0, len(recipe.Parameters))}
	bindings := make([]domain.Binding, 0, len(recipe.Parameters))
	rest := args

	for _, p := range recipe.Parameters {
		var value string
		switch {
		case p.IsVariadic():
			if len(rest) == 0 && p.Default != nil {
				v, err := b.defaultValue(ctx, p, scope, bindings)
				if err != nil {
					return nil, err
				}
				value = v
				bound.Variadic = []string{v}
			} else {
				bound.Variadic = append([]string(nil), rest...)
				value = strings.Join(rest, " ")
			}
			rest = nil
		case len(rest) > 0:
			value = rest[0]
			rest = rest[1:]
		default:
			v, err := b.defaultValue(ctx, p, scope, bindings)
			if err != nil {
				return nil, err
			}
			value = v
		}

		bound.Values = append(bound.Values, value)
		bindings = append(bindings, domain.Binding{
			Name:   p.Name,
			Value:  value,
			Export: p.Export || b.Export,
		})
	}

	bound.Scope = scope.With(domain.NewLayer("parameters", bindings...))
	return bound, nil
}

func (b *Binder) defaultValue(
	ctx context.Context,
	p domain.Parameter,
	scope *domain.Scope,
	earlier []domain.Binding,
) (string, error) {
	if p.Default == nil {
		return "", nil
	}
	return b.evaluator.Evaluate(ctx, p.Default, scope.With(domain.NewLayer("parameters", earlier...)))
}

// Check validates an argument count against recipe's parameters without binding.
func Check(recipe *domain.Recipe, found int, implicit bool) error {
	minArgs, maxArgs := recipe.MinArguments(), recipe.MaxArguments()

	if implicit && found == 0 && minArgs > 0 {
		return &domain.DefaultRecipeRequiresArgumentsError{
			Recipe:       recipe.Name.String(),
			MinArguments: minArgs,
		}
	}
	if found < minArgs || (maxArgs >= 0 && found > maxArgs) {
		return &domain.ArgumentCountMismatchError{
			Recipe:     recipe.Name.String(),
			Parameters: recipe.Parameters,
			Found:      found,
			Min:        minArgs,
			Max:        maxArgs,
		}
	}
	return nil
}
