package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	return New(Options{
		ServiceName: "test",
		Level:       zerolog.DebugLevel,
		Output:      buf,
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	return payload
}

func TestInfoIncludesServiceName(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Info(context.Background(), "hello")

	payload := decodeLine(t, &buf)
	assert.Equal(t, "test", payload["service"])
	assert.Equal(t, "hello", payload["message"])
}

func TestWithFieldPropagatesThroughContext(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := log.WithField(context.Background(), "order_number", "VK202601010042")
	log.Info(ctx, "created")

	payload := decodeLine(t, &buf)
	assert.Equal(t, "VK202601010042", payload["order_number"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	ctx := log.WithRequestID(context.Background(), "req-123")
	log.Info(ctx, "ok")

	payload := decodeLine(t, &buf)
	assert.Equal(t, "req-123", payload["request_id"])
}

func TestErrorIncludesStackAndError(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	log.Error(context.Background(), "boom", errors.New("db down"))

	payload := decodeLine(t, &buf)
	assert.Equal(t, "db down", payload["error"])
	assert.NotEmpty(t, payload["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}
