package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/adapters/telemetry/progrock"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			// Progress recording is opt-in; the default stays silent so
			// plain terminal output is not interleaved with a tape.
			if os.Getenv("UGLE_PROGRESS") != "" {
				return progrock.New(os.Stderr), nil
			}
			return NewNoOp(), nil
		},
	})
}
