// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/jot/internal/core/domain"
)

// Executor runs rendered recipe bodies.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd to completion. Failures are catalog errors such as
	// *domain.CodeError or *domain.ShebangError.
	Execute(ctx context.Context, cmd *domain.Command) error
}

// BacktickRunner runs a command through a shell and captures its standard output.
type BacktickRunner interface {
	// Capture returns stdout verbatim. Failures are *domain.OutputError.
	Capture(ctx context.Context, shell []string, command string, env map[string]string, dir string) (string, error)
}
