package ports

import (
	"context"

	"go.trai.ch/jot/internal/core/domain"
)

// ExpressionEvaluator reduces expressions to strings.
//
//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type ExpressionEvaluator interface {
	Evaluate(ctx context.Context, expr domain.Expression, scope *domain.Scope) (string, error)
}

// Renderer turns a bound recipe into a command ready to run.
type Renderer interface {
	Render(ctx context.Context, recipe *domain.Recipe, scope *domain.Scope) (*domain.Command, error)
}
