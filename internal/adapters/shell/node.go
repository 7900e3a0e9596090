package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/logger"
	"go.trai.ch/ugle/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the Runner Graft node.
	NodeID graft.ID = "adapter.runner"
	// CopierNodeID is the unique identifier for the TreeCopier Graft node.
	CopierNodeID graft.ID = "adapter.copier"
)

func init() {
	graft.Register(graft.Node[ports.Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Runner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})

	graft.Register(graft.Node[ports.TreeCopier]{
		ID:        CopierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.TreeCopier, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			return NewCopier(runner), nil
		},
	})
}
