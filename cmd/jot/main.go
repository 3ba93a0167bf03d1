// Package main is the entry point for the jot command runner.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/jot/cmd/jot/commands"
	"go.trai.ch/jot/internal/app"
	"go.trai.ch/jot/internal/core/domain"
	_ "go.trai.ch/jot/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// Cancellation interrupts the running recipe and stops the rest of the plan.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	err = cli.Execute(ctx)
	if err == nil {
		return 0
	}

	var runErr domain.RunError
	switch {
	case errors.As(err, &runErr):
		if domain.ShouldReport(err) {
			_, _ = fmt.Fprintln(stderr, components.Formatter.Format(err))
		}
	default:
		components.Logger.Error(err)
	}
	return domain.ExitCode(err)
}
