package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ugle/internal/adapters/telemetry"
	"go.trai.ch/ugle/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	noop := telemetry.NewNoOp()

	ctx, vertex := noop.Record(context.Background(), "snapshot:mylib")
	assert.Equal(t, vertex, ports.VertexFromContext(ctx))

	_, err := vertex.Stdout().Write([]byte("discarded"))
	assert.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("discarded"))
	assert.NoError(t, err)

	vertex.Complete(nil)
	assert.NoError(t, noop.Close())
}
