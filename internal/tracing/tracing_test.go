package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutExporter(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	shutdown, err := Init(ctx, Config{
		Enabled:     true,
		ServiceName: "foodgram-test",
		Version:     "test",
		Writer:      &buf,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("tracing_test").Start(ctx, "download-shopping-list")
	span.End()

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, buf.String(), "download-shopping-list")
	assert.Contains(t, buf.String(), "foodgram-test")
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, sampleRatio(0))
	assert.Equal(t, 1.0, sampleRatio(-1))
	assert.Equal(t, 1.0, sampleRatio(3))
	assert.Equal(t, 0.25, sampleRatio(0.25))
}
