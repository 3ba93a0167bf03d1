package dotenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jot/internal/core/ports"
)

// NodeID is the unique identifier for the dotenv Graft node.
const NodeID graft.ID = "adapter.dotenv"

func init() {
	graft.Register(graft.Node[ports.DotenvLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DotenvLoader, error) {
			return NewLoader(), nil
		},
	})
}
