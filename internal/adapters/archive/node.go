package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ugle/internal/core/ports"
)

// NodeID is the unique identifier for the Archiver Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Archiver, error) {
			return NewZipArchiver(), nil
		},
	})
}
