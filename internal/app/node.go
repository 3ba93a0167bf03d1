package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jot/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/adapters/dotenv"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/adapters/render"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/jot/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App with the adapters the command line needs directly.
type Components struct {
	App       *App
	Logger    ports.Logger
	Formatter ports.ErrorFormatter
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			shell.CaptureNodeID,
			shell.ProcessNodeID,
			dotenv.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			render.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.BacktickRunner](ctx)
	if err != nil {
		return nil, err
	}

	process, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}

	env, err := graft.Dep[ports.DotenvLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, runner, env, process, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	formatter, err := graft.Dep[ports.ErrorFormatter](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Formatter: formatter,
	}, nil
}
