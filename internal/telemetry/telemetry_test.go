package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := Tracer("test").Start(context.Background(), "test.span")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	ctx := context.Background()

	// the exporter connects lazily, nothing needs to listen here
	shutdown, err := Setup(ctx, Config{Endpoint: "http://127.0.0.1:4318", ServiceName: "raidplan-test"})
	require.NoError(t, err)

	_, span := Tracer("test").Start(ctx, "test.span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_ = shutdown(cancelled)
}
