// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/ugle/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the progrock library. Each
// transaction step, dependency, or package becomes one vertex on the tape.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	render func() error
}

// New creates a Recorder on a fresh tape. The tape's final state is rendered
// to out when the recorder is closed, so a completed run leaves the progress
// summary behind instead of discarding it.
func New(out io.Writer) *Recorder {
	tape := progrock.NewTape()
	r := NewRecorder(tape)
	r.render = func() error {
		return tape.Render(out, progrock.DefaultUI())
	}
	return r
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close completes the recording session, closes the underlying writer, and
// renders the tape when one is attached.
func (r *Recorder) Close() error {
	r.rec.Complete()
	if err := r.rec.Close(); err != nil {
		return err
	}
	if r.render != nil {
		return r.render()
	}
	return nil
}
