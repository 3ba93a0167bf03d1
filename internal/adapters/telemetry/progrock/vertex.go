package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span implements ports.Span wrapping *progrock.VertexRecorder.
type Span struct {
	tracer *Tracer
	name   string
	vertex *progrock.VertexRecorder
	err    error
}

// Write captures output on the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// SetAttribute records the attribute on the vertex's stderr stream.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stderr(), "%s=%v\n", key, value)
}

// RecordError remembers err so End completes the vertex as failed.
func (s *Span) RecordError(err error) {
	s.err = err
}

// End marks the vertex as finished.
func (s *Span) End() {
	s.vertex.Done(s.err)
	if s.err != nil {
		s.tracer.tracef("fail %s: %v", s.name, s.err)
		return
	}
	s.tracer.tracef("done %s", s.name)
}
