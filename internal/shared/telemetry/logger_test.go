package telemetry

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestFieldsReachGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Info("analysis.completed", map[string]any{"industry": "fintech", "confidence": 42})
	Error("analysis.failed", map[string]any{"error": errors.New("boom")})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["industry"] != "fintech" {
		t.Fatalf("expected industry field, got %#v", ctx)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["error"] != "boom" {
		t.Fatalf("expected error field, got %#v", entries[1].ContextMap())
	}
}
