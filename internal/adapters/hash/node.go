package hash

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the FileHasher Graft node.
const NodeID graft.ID = "adapter.hasher"

func init() {
	graft.Register(graft.Node[ports.FileHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileHasher, error) {
			return NewHasher(), nil
		},
	})
}
