package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWith_CarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	l.With("method", "GET", "path", "/healthz").Info("request handled", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "request handled")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/healthz")
	assert.Contains(t, out, "status=200")
}

func TestWith_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	_ = l.With("component", "quota")
	l.Info("plain record")

	assert.NotContains(t, buf.String(), "component=quota")
}
