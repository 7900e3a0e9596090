package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the ManifestLoader Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return NewLoader(), nil
		},
	})
}
