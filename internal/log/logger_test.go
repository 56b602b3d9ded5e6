package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})

	logger.Info("hello", FieldRecords, 3)

	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentApp) {
		t.Fatalf("expected default component stamp, got %q", out)
	}
	if !strings.Contains(out, FieldRecords+"=3") {
		t.Fatalf("expected records field, got %q", out)
	}
	if logger.Component() != ComponentApp {
		t.Fatalf("Component() = %q, want %q", logger.Component(), ComponentApp)
	}
}

func TestWithComponentRescopes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil), Component: ComponentLedger})

	scoped := logger.WithComponent(ComponentWorker)
	if scoped.Component() != ComponentWorker {
		t.Fatalf("Component() = %q, want %q", scoped.Component(), ComponentWorker)
	}

	scoped.Info("rebuilt")
	out := buf.String()
	if !strings.Contains(out, FieldComponent+"="+ComponentWorker) {
		t.Fatalf("expected worker component stamp, got %q", out)
	}
	if strings.Contains(out, ComponentLedger) {
		t.Fatalf("old component must be replaced, not stacked, got %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line should be below the warn threshold, got %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line missing, got %q", buf.String())
	}
}
