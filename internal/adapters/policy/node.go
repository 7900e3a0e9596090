package policy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the Confirmer Graft node.
const NodeID graft.ID = "adapter.policy"

func init() {
	graft.Register(graft.Node[ports.Confirmer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Confirmer, error) {
			return NewProceed(), nil
		},
	})
}
