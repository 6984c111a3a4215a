package telemetry_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := telemetry.Setup(context.Background(), "orderflow-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	assert.Same(t, before, otel.GetTracerProvider())
}

func TestSetup_RegistersProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	// Non-routable address, nothing is exported before shutdown.
	shutdown, err := telemetry.Setup(context.Background(), "orderflow-test", "http://192.0.2.1:4318")
	require.NoError(t, err)

	assert.NotSame(t, previous, otel.GetTracerProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
