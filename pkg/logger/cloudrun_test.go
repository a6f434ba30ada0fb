package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	return event
}

func TestCloudRunHandlerShape(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("request_id", "abc")

	log.Warn("store slow", "elapsed_ms", 12, "error", errors.New("boom"))

	event := decodeLine(t, &buf)
	if event["severity"] != "WARNING" || event["message"] != "store slow" {
		t.Fatalf("unexpected event: %v", event)
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", event["data"])
	}
	if data["request_id"] != "abc" || data["error"] != "boom" || data["elapsed_ms"] != float64(12) {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerLevelAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo))

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}

	log.WithGroup("store").Info("loaded", "count", 3)
	data := decodeLine(t, &buf)["data"].(map[string]any)
	if data["store.count"] != float64(3) {
		t.Fatalf("expected grouped key, got %v", data)
	}
}

func TestNewUsesLevelString(t *testing.T) {
	log := New("warn", NewTestHandler)
	if log.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}
	if !log.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestContextRoundTrip(t *testing.T) {
	log := slog.New(NewTestHandler(slog.LevelDebug))
	ctx := ToContext(context.Background(), log)

	if FromContext(ctx) != log {
		t.Fatal("expected stored logger")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
	if !IsDebugEnabled(ctx) {
		t.Fatal("expected debug to be enabled")
	}
}
