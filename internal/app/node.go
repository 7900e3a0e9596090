package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ugle/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ugle/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/ugle/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/engine/checkout"
	"go.trai.ch/ugle/internal/engine/snapshot"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			snapshot.NodeID,
			checkout.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			snap, err := graft.Dep[*snapshot.Transaction](ctx)
			if err != nil {
				return nil, err
			}

			co, err := graft.Dep[*checkout.Transaction](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, snap, co, runner, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:       application,
				Logger:    log,
				Telemetry: tel,
			}, nil
		},
	})
}
