package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jot/internal/adapters/logger"
	"go.trai.ch/jot/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the recipe executor Graft node.
	NodeID graft.ID = "adapter.executor"
	// CaptureNodeID is the unique identifier for the backtick runner Graft node.
	CaptureNodeID graft.ID = "adapter.capture"
	// CygpathNodeID is the unique identifier for the path translator Graft node.
	CygpathNodeID graft.ID = "adapter.cygpath"
	// ProcessNodeID is the unique identifier for the process runner Graft node.
	ProcessNodeID graft.ID = "adapter.process"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, CygpathNodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			translator, err := graft.Dep[ports.PathTranslator](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, translator), nil
		},
	})

	graft.Register(graft.Node[ports.BacktickRunner]{
		ID:        CaptureNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BacktickRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, nil), nil
		},
	})

	graft.Register(graft.Node[ports.PathTranslator]{
		ID:        CygpathNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CaptureNodeID},
		Run: func(ctx context.Context) (ports.PathTranslator, error) {
			runner, err := graft.Dep[ports.BacktickRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewCygpathTranslator(runner), nil
		},
	})

	graft.Register(graft.Node[ports.ProcessRunner]{
		ID:        ProcessNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessRunner, error) {
			return NewProcessRunner(), nil
		},
	})
}
