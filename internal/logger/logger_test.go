package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")
	assert.Zero(t, buf.Len())

	log.Warn("should appear", "key", "value")
	assert.Contains(t, buf.String(), "should appear")
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func TestFromFormat(t *testing.T) {
	var buf bytes.Buffer
	FromFormat(&buf, "text", slog.LevelInfo).Info("hello", "n", 3)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "n=3")

	buf.Reset()
	FromFormat(&buf, "JSON", slog.LevelInfo).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, slog.LevelDebug).With("tensor", "T1").Debug("sync")
	assert.Contains(t, buf.String(), "tensor=T1")
}

func TestContextRoundTrip(t *testing.T) {
	log := Discard()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
