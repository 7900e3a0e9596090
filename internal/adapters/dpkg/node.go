package dpkg

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/shell"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the PackageManager Graft node.
const NodeID graft.ID = "adapter.dpkg"

func init() {
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner), nil
		},
	})
}
