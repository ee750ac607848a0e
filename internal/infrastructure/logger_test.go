package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgauge/internal/config"
)

func TestInitializeLogger_Stdout(t *testing.T) {
	ResetLoggerForTesting()
	logger, err := InitializeLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
}

func TestInitializeLogger_File(t *testing.T) {
	ResetLoggerForTesting()
	path := t.TempDir() + "/app.log"
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, CloseLogFile())
	assert.FileExists(t, path)
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestTraceHandler_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(&traceHandler{Handler: base})

	ctx := WithTraceID(context.Background(), "trace-xyz")
	logger.InfoContext(ctx, "request handled")

	assert.Contains(t, buf.String(), `"trace_id":"trace-xyz"`)
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.NotEmpty(t, id)

	ctx2 := EnsureTraceID(ctx)
	assert.Equal(t, id, GetTraceID(ctx2))
	assert.Equal(t, ctx, ctx2)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("unknown"))
}

func TestMetrics_Output(t *testing.T) {
	m := NewMetrics()
	m.SetDatasetSize(42, 17)
	m.ObserveRequest("GET", "/api/dataset", 200, 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "assetgauge_dataset_rows 42")
	assert.Contains(t, body, "assetgauge_dataset_columns 17")
	assert.Contains(t, body, `assetgauge_http_requests_total{method="GET",path="/api/dataset",status="200"} 1`)
}
