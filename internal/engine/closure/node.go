package closure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/dpkg"
	"go.trai.ch/ugle/internal/adapters/hash"
	"go.trai.ch/ugle/internal/adapters/logger"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the closure Builder Graft node.
const NodeID graft.ID = "engine.closure"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{dpkg.NodeID, hash.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			pm, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.FileHasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(pm, hasher, log), nil
		},
	})
}
