package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DebugLevel(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	Init(Options{Debug: true, Output: &buf})

	Debug("debug message", "key", "value")
	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("expected debug message in output, got %q", buf.String())
	}
}

func TestInit_DefaultSuppressesDebug(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	Init(Options{Output: &buf})

	Debug("hidden")
	Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be suppressed at default level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info message missing from output: %q", out)
	}
}

func TestInit_Quiet(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	Init(Options{Quiet: true, Output: &buf})

	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "info message") || strings.Contains(out, "warn message") {
		t.Errorf("quiet mode should only emit errors: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("error message missing in quiet mode: %q", out)
	}
}

func TestInit_JSONHandler(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	Init(Options{JSON: true, Output: &buf})

	Info("structured", "count", 3)
	if !strings.Contains(buf.String(), `"msg":"structured"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Info("custom sink")
	if !strings.Contains(buf.String(), "custom sink") {
		t.Errorf("custom logger not used: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	Init(Options{Output: &buf})

	With("component", "test").Info("attributed")
	out := buf.String()
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected attribute in output, got %q", out)
	}
}
