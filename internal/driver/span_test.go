package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestRun_Span(t *testing.T) {
	sr := recordSpans(t)
	c := testConfig(t)
	c.Backend = "jit"
	c.Size = 4

	_, err := NewRunner(Default(), nil).Run(context.Background(), c)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "driver.Run", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("gradspeed.backend", "jit"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("gradspeed.size", 4))
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestRun_SpanOnFailure(t *testing.T) {
	sr := recordSpans(t)
	reg := NewRegistry()
	require.NoError(t, reg.Register(Backend{
		Name: "plain",
		New:  Default().backends[0].New,
	}))
	c := testConfig(t)
	c.Backend = "plain"
	c.File = t.TempDir() // a directory cannot be appended to

	_, err := NewRunner(reg, nil).Run(context.Background(), c)
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestRun_NoSpanForInvalidConfig(t *testing.T) {
	sr := recordSpans(t)
	c := testConfig(t)
	c.Size = 10

	_, err := NewRunner(Default(), nil).Run(context.Background(), c)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Empty(t, sr.Ended())
}
