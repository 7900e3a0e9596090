package render

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the EnvRenderer Graft node.
const NodeID graft.ID = "adapter.render"

func init() {
	graft.Register(graft.Node[ports.EnvRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
