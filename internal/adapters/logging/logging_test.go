package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/revelare/toolbelt/internal/ports"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 250_000_000, time.Local)

func fixedClock() time.Time { return fixedTime }

func TestNopLogger_Methods(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	if logger.With(ports.F("key", "value")) != logger {
		t.Error("NopLogger.With should return itself")
	}

	logger.SetLevel(ports.LevelDebug)
	if logger.Level() != ports.LevelDebug {
		t.Errorf("after SetLevel, level = %v, want %v", logger.Level(), ports.LevelDebug)
	}
}

func TestConsoleLogger_SessionLineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelDebug),
		WithClock(fixedClock),
	)

	logger.Warn(context.Background(), "npm not found, skipping node.js packages")

	want := "2024-03-09 14:05:07.250 - WARNING - npm not found, skipping node.js packages\n"
	if buf.String() != want {
		t.Errorf("line = %q, want %q", buf.String(), want)
	}
}

func TestConsoleLogger_WithoutTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithTimeLayout(""))

	logger.Info(context.Background(), "test", ports.F("key1", "value1"), ports.F("key2", 42))

	want := "INFO - test key1=value1 key2=42\n"
	if buf.String() != want {
		t.Errorf("line = %q, want %q", buf.String(), want)
	}
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithJSONFormat(true),
		WithClock(fixedClock),
	)

	logger.Error(context.Background(), "spawn failed", ports.F("error", errors.New("boom")))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["msg"] != "spawn failed" {
		t.Errorf("msg = %v, want 'spawn failed'", entry["msg"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want 'boom'", entry["error"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry should carry a time")
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	if buf.Len() > 0 {
		t.Errorf("Debug and Info should be filtered, got %q", buf.String())
	}

	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")
	if !strings.Contains(buf.String(), "warn message") || !strings.Contains(buf.String(), "error message") {
		t.Errorf("Warn and Error should pass, got %q", buf.String())
	}

	buf.Reset()
	logger.SetLevel(ports.LevelDebug)
	logger.Debug(ctx, "now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Debug should pass after SetLevel")
	}
}

func TestConsoleLogger_With_DoesNotModifyOriginal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(WithOutput(&buf), WithTimeLayout(""))
	ctx := context.Background()

	derived := logger.With(ports.F("category", "core"))
	logger.Info(ctx, "original")
	derived.Info(ctx, "derived")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if strings.Contains(lines[0], "category=core") {
		t.Error("original logger should not have derived field")
	}
	if !strings.HasSuffix(lines[1], "derived category=core") {
		t.Errorf("derived line = %q", lines[1])
	}
}

func TestCharmLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCharmLogger(&buf, ports.LevelInfo)
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.With(ports.F("category", "core")).Info(ctx, "Starting installation", ports.F("entries", 9))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
	for _, want := range []string{"Starting installation", "category=core", "entries=9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got %q", want, out)
		}
	}

	logger.SetLevel(ports.LevelDebug)
	if logger.Level() != ports.LevelDebug {
		t.Errorf("level = %v, want DEBUG", logger.Level())
	}
}

func TestMultiLogger_FansOut(t *testing.T) {
	var file, console bytes.Buffer
	fileLog := NewConsoleLogger(WithOutput(&file), WithLevel(ports.LevelDebug), WithTimeLayout(""))
	consoleLog := NewConsoleLogger(WithOutput(&console), WithLevel(ports.LevelInfo), WithTimeLayout(""))
	multi := NewMultiLogger(fileLog, nil, consoleLog)
	ctx := context.Background()

	multi.Debug(ctx, "command output")
	multi.With(ports.F("step", "refresh")).Info(ctx, "done")

	if !strings.Contains(file.String(), "command output") || !strings.Contains(file.String(), "done step=refresh") {
		t.Errorf("file sink missing lines: %q", file.String())
	}
	if strings.Contains(console.String(), "command output") {
		t.Errorf("console sink should filter debug: %q", console.String())
	}
	if !strings.Contains(console.String(), "done step=refresh") {
		t.Errorf("console sink missing info line: %q", console.String())
	}
	if multi.Level() != ports.LevelDebug {
		t.Errorf("multi level = %v, want DEBUG", multi.Level())
	}
}

func TestOpenSessionLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

	f, err := OpenSessionLog(dir, started)
	if err != nil {
		t.Fatalf("OpenSessionLog: %v", err)
	}
	defer f.Close()

	want := filepath.Join(dir, "install_debug_20240102_030405.log")
	if f.Name() != want {
		t.Errorf("path = %q, want %q", f.Name(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
