package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/config"
)

func TestInitializeTelemetry_Disabled(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{TraceExporter: "none"}, nil)
	require.NoError(t, err)

	assert.Nil(t, tel.TracerProvider)
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.Metrics)

	_, span := tel.Tracer.Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitializeTelemetry_UnsupportedExporter(t *testing.T) {
	_, err := InitializeTelemetry(config.TelemetryConfig{TraceExporter: "zipkin"}, nil)
	assert.Error(t, err)
}

func TestTelemetry_TraceAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	traceFile := filepath.Join(dir, "traces", "trace.json")
	metricsFile := filepath.Join(dir, "metrics", "enem.prom")

	tel, err := InitializeTelemetry(config.TelemetryConfig{
		TraceExporter: "stdout",
		TraceFile:     traceFile,
		MetricsFile:   metricsFile,
	}, nil)
	require.NoError(t, err)

	ctx, span := tel.Tracer.Start(context.Background(), "load_exam")
	tel.Metrics.RecordRows(ctx, "exam", 42)
	tel.Metrics.RecordStep(ctx, "ingest", "load_exam", "completed", 150*time.Millisecond)
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))

	traces, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(traces), "load_exam")

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "enem_steps")
	assert.Contains(t, string(metrics), "enem_rows_loaded")
	assert.Contains(t, string(metrics), `step="load_exam"`)
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var m *PipelineMetrics
	assert.NotPanics(t, func() {
		m.RecordStep(context.Background(), "ingest", "x", "skipped", time.Second)
		m.RecordRows(context.Background(), "exam", 1)
	})
}
