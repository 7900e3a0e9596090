package locator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/git"
	"go.trai.ch/ugle/internal/adapters/logger"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the Locator Graft node.
const NodeID graft.ID = "engine.locator"

func init() {
	graft.Register(graft.Node[*Locator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{git.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Locator, error) {
			vcs, err := graft.Dep[ports.VersionControl](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(vcs, log), nil
		},
	})
}
