package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/adapters/telemetry"
	"go.trai.ch/jot/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_Start(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test-tracer")
	assert.NotNil(t, tracer)

	ctx, span := tracer.Start(context.Background(), "test-span",
		ports.WithAttribute("recipe.key", "abc"),
		ports.WithAttribute("count", 2),
	)
	assert.NotNil(t, span)

	tracer.EmitPlan(ctx, []string{"build", "test"})
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("boom"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	assert.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "test-span")
	assert.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("boom"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}
