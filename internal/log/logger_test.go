package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAttachesComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentPlanner, Output: &buf})
	l.Info("list created", FieldListID, "l1")

	out := buf.String()
	if strings.Count(out, "component=planner") != 1 {
		t.Fatalf("component not attached exactly once: %q", out)
	}
	if !strings.Contains(out, "list_id=l1") {
		t.Fatalf("missing field: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().
		WithOperation(OpSave).
		WithEntity("item", "i1").
		WithError(errors.New("boom")).
		WithError(nil)
	if f[FieldOperation] != OpSave || f[FieldEntityID] != "i1" || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice length mismatch")
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := Discard().WithComponent(ComponentWorker)
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatalf("logger not recovered from context")
	}
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("fallback logger should be unnamed")
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf}).With(FieldBackend, "sqlite").WithComponent(ComponentStorage)
	l.Info("opened")

	out := buf.String()
	if strings.Contains(out, "component=app") || !strings.Contains(out, "component=storage") {
		t.Fatalf("component not replaced: %q", out)
	}
	if !strings.Contains(out, "backend=sqlite") {
		t.Fatalf("earlier attributes lost: %q", out)
	}
}
