// Package progrock provides a tracer that records recipe runs on a progrock tape.
package progrock

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/jot/internal/core/ports"
)

// Tracer implements ports.Tracer by recording one vertex per recipe run.
// Lifecycle lines are also written to an optional trace writer.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu    sync.Mutex
	trace io.Writer
}

// New creates a new Tracer with a default tape that reports to trace.
func New(trace io.Writer) *Tracer {
	t := NewTracer(progrock.NewTape())
	t.trace = trace
	return t
}

// NewTracer creates a new Tracer with the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex. Runs of the same recipe with different arguments
// are distinguished by the recipe.key attribute.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	id := name
	if key, ok := cfg.Attributes["recipe.key"]; ok {
		id = fmt.Sprintf("%s@%v", name, key)
	}
	v := t.rec.Vertex(digest.FromString(id), name)
	t.tracef("start %s", name)
	return ctx, &Span{tracer: t, name: name, vertex: v}
}

// EmitPlan records the plan as a completed vertex listing the recipes in order.
func (t *Tracer) EmitPlan(_ context.Context, recipes []string) {
	plan := strings.Join(recipes, " ")
	v := t.rec.Vertex(digest.FromString("plan:"+plan), "plan")
	_, _ = fmt.Fprintln(v.Stdout(), plan)
	v.Done(nil)
	t.tracef("plan %s", plan)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (t *Tracer) tracef(format string, args ...any) {
	if t.trace == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.trace, "[trace] "+format+"\n", args...)
}
