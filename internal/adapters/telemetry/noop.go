// Package telemetry provides progress-recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/ugle/internal/core/ports"
)

// NoOpTelemetry is a no-op implementation of ports.Telemetry. It is the
// default when no progress UI is attached.
type NoOpTelemetry struct{}

// NewNoOp creates a new NoOpTelemetry.
func NewNoOp() *NoOpTelemetry {
	return &NoOpTelemetry{}
}

// Record returns a no-op vertex.
func (t *NoOpTelemetry) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (t *NoOpTelemetry) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Stdout discards all writes.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Stderr discards all writes.
func (v *NoOpVertex) Stderr() io.Writer { return io.Discard }

// Complete does nothing.
func (v *NoOpVertex) Complete(error) {}
