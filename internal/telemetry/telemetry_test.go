package telemetry

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/manav03panchal/dashkit/internal/config"
)

func TestSetupDisabled(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), config.TraceConfig{Enabled: false}, &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "script.add")
	SetOK(span)
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
	assert.False(t, span.SpanContext().IsValid())
}

func TestSetupStdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), config.TraceConfig{Enabled: true, Exporter: "stdout"}, &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "script.move",
		trace.WithAttributes(StringAttr("dashkit.widget", "Chart"), IntAttr("dashkit.line", 4)))
	SetRejected(span, "widget not found")
	span.End()

	_, span = StartSpan(context.Background(), "script.bad")
	RecordError(span, errors.New("boom"))
	span.End()

	require.NoError(t, shutdown(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "script.move")
	assert.Contains(t, out, "dashkit.widget")
	assert.Contains(t, out, "widget not found")
	assert.Contains(t, out, "boom")
}

func TestSetupNoopExporter(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TraceConfig{Enabled: true, Exporter: "noop"}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupUnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TraceConfig{Enabled: true, Exporter: "zipkin"}, nil)
	assert.Error(t, err)
}
