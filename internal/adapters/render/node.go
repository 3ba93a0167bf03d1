package render

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/jot/internal/core/ports"
)

// NodeID is the unique identifier for the error formatter Graft node.
const NodeID graft.ID = "adapter.render"

func init() {
	graft.Register(graft.Node[ports.ErrorFormatter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ErrorFormatter, error) {
			return NewFormatter(DetectColor(os.Stderr)), nil
		},
	})
}
