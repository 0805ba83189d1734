package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "speechkit", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", buf.String(), err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")
	l.Info("job submitted", Fields(FieldJobID, "abc", FieldSegmentCount, 3))

	m := decodeLine(t, &buf)
	if m["message"] != "job submitted" {
		t.Errorf("unexpected message %v", m["message"])
	}
	if m[FieldJobID] != "abc" {
		t.Errorf("expected job_id abc, got %v", m[FieldJobID])
	}
	if m[FieldService] != "speechkit" {
		t.Errorf("expected service field, got %v", m[FieldService])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "nonsense")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").WithComponent("batch").WithError(errors.New("boom"))
	l.Error("resolve failed")
	m := decodeLine(t, &buf)
	if m[FieldComponent] != "batch" {
		t.Errorf("expected component batch, got %v", m[FieldComponent])
	}
	if m["error"] != "boom" {
		t.Errorf("expected error boom, got %v", m["error"])
	}
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	jsonLogger(&buf, "info").WithContext(ctx).Info("hello")
	if decodeLine(t, &buf)[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id, got %q", buf.String())
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithFields(Fields(FieldLocale, "en-US")).Info("x")
	if decodeLine(t, &buf)[FieldLocale] != "en-US" {
		t.Errorf("expected locale field, got %q", buf.String())
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "speechkit", &buf)
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[SPE][WRN]") || !strings.Contains(out, "careful") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestSetGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(jsonLogger(&buf, "info"))
	Info("global")
	if !strings.Contains(buf.String(), "global") {
		t.Errorf("expected global logger output, got %q", buf.String())
	}
}

func TestConfigApplyDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad level", Config{Level: "loud", Format: "json"}},
		{"bad format", Config{Level: "info", Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	ef := ErrorFields("download", errors.New("404"))
	if ef[FieldOperation] != "download" || ef[FieldError] != "404" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("merge", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration %v", df[FieldDuration])
	}
}

func TestRedactURL(t *testing.T) {
	got := RedactURL("https://acct.blob.core.windows.net/c/file.json?se=2020-01-01T00%3A00%3A00Z&sig=secret")
	if got != "https://acct.blob.core.windows.net/c/file.json" {
		t.Errorf("unexpected redaction %q", got)
	}
	if RedactURL("://bad") != "<unparseable url>" {
		t.Errorf("expected placeholder for bad url")
	}
}
