package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"luckyticket/internal/pkg/logger"
)

func TestInitTracerInstallsProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitTracer(context.Background(), "luckyticket-test", "localhost:4318", logger.Discard())
	require.NoError(t, err)
	assert.NotEqual(t, prev, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop(context.Background()))
}
