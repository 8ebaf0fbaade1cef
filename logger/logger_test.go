package logger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
	if got := l.logger.GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected default level warn, got %s", got)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "gojoin", &buf)
	l.Debug("group joined", Fields("key", "a", "rows", 2))

	out := buf.String()
	if !strings.Contains(out, `"message":"group joined"`) {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"key":"a"`) || !strings.Contains(out, `"rows":2`) {
		t.Errorf("expected fields in output, got %q", out)
	}
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "gojoin", &buf)
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn message, got %q", out)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if got := l.logger.GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected fallback level warn, got %s", got)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	cl := l.WithComponent("engine")
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("hello")
	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestWithContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	ctx := ContextWithRunID(context.Background(), "run-42")
	if got := RunIDFromContext(ctx); got != "run-42" {
		t.Fatalf("expected run-42, got %q", got)
	}
	l.WithContext(ctx).Info("started")
	if !strings.Contains(buf.String(), `"run_id":"run-42"`) {
		t.Errorf("expected run_id field, got %q", buf.String())
	}
}

func TestWithContext_NoRunID(t *testing.T) {
	l := NewDefault("test")
	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger when the context carries no run ID")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	l.WithFields(map[string]interface{}{"side": 1}).WithError(fmt.Errorf("boom")).Error("failed")
	out := buf.String()
	if !strings.Contains(out, `"side":1`) || !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected side and error fields, got %q", out)
	}
}

func TestInit(t *testing.T) {
	cfg := Config{Level: "info", Format: "console"}
	Init(&cfg)
	if cfg.Output != "stderr" {
		t.Errorf("expected Init to apply defaults, got output %q", cfg.Output)
	}
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected global logger to be the custom one")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "warn" {
		t.Errorf("expected level 'warn', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}

	custom := Config{Level: "debug", Format: "json", Output: "stdout"}
	custom.ApplyDefaults()
	if custom.Level != "debug" || custom.Format != "json" || custom.Output != "stdout" {
		t.Errorf("explicit values should be kept, got %+v", custom)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"disabled", Config{Level: "disabled", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "gojoin", &buf)
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[GOJ][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestRegisterAndGet(t *testing.T) {
	defer Reset()
	l := NewDefault("registered")
	Register("engine", l)
	if Get("engine") != l {
		t.Error("expected registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	Reset()
	if Get("nobody") == nil {
		t.Fatal("expected fallback logger for unregistered name")
	}
}

func TestRegisterDefaults(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf))
	defer SetGlobalLogger(nil)

	RegisterDefaults("join", "cli")
	components.RLock()
	n := len(components.byName)
	components.RUnlock()
	if n != 2 {
		t.Errorf("expected 2 registered loggers, got %d", n)
	}

	Get("join").Info("hello")
	if !strings.Contains(buf.String(), `"component":"join"`) {
		t.Errorf("expected the join component on the global writer, got %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected non-string keys and dangling values to be skipped, got %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("read", fmt.Errorf("eof"))
	if m[FieldOperation] != "read" || m[FieldError] != "eof" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("join", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}

func TestMergeWithError(t *testing.T) {
	m := MergeWithError(nil, fmt.Errorf("x"))
	if m[FieldError] != "x" {
		t.Errorf("expected error field, got %v", m)
	}
	existing := map[string]interface{}{"k": "v"}
	MergeWithError(existing, fmt.Errorf("y"))
	if existing["k"] != "v" || existing[FieldError] != "y" {
		t.Errorf("expected merge into existing map, got %v", existing)
	}
}
