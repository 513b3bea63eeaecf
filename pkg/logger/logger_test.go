package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestGetWithoutInit(t *testing.T) {
	global.Store(nil)
	if Get() == nil {
		t.Fatal("expected a default logger")
	}
	if Get() != Get() {
		t.Error("default logger should be installed once")
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat("JSON"), WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}

	Get().Info(context.Background(), "analysis done", String("pose", "tree"), Float64("score", 96))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not json: %v: %q", err, buf.String())
	}
	if line["msg"] != "analysis done" || line["pose"] != "tree" {
		t.Errorf("unexpected record: %v", line)
	}
	src, _ := line["source"].(string)
	if !strings.HasPrefix(src, "logger_test.go:") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("worker").Error(context.Background(), "processing failed", Error(errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "processing failed") || !strings.Contains(out, "component=worker") || !strings.Contains(out, "error=boom") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "INFO", " warn ", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q): %v", level, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}

	if err := SetLevelString("warn"); err != nil {
		t.Fatal(err)
	}
	Get().Info(context.Background(), "hidden")
	Get().Warn(context.Background(), "shown", Int("n", 1))
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level filtering failed: %q", buf.String())
	}
}
