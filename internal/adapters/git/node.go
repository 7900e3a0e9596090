package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/shell"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the VersionControl Graft node.
const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.VersionControl]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.VersionControl, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(runner), nil
		},
	})
}
