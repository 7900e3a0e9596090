package checkout

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/archive"
	"go.trai.ch/ugle/internal/adapters/config"
	"go.trai.ch/ugle/internal/adapters/logger"
	"go.trai.ch/ugle/internal/adapters/render"
	"go.trai.ch/ugle/internal/adapters/shell"
	"go.trai.ch/ugle/internal/adapters/telemetry"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/engine/locator"
)

// NodeID is the unique identifier for the checkout Transaction Graft node.
const NodeID graft.ID = "engine.checkout"

func init() {
	graft.Register(graft.Node[*Transaction]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			locator.NodeID,
			config.NodeID,
			shell.CopierNodeID,
			archive.NodeID,
			render.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Transaction, error) {
			loc, err := graft.Dep[*locator.Locator](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			copier, err := graft.Dep[ports.TreeCopier](ctx)
			if err != nil {
				return nil, err
			}
			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}
			renderer, err := graft.Dep[ports.EnvRenderer](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewTransaction(loc, loader, copier, archiver, renderer, tel, log), nil
		},
	})
}
