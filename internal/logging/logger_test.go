package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("key", "value")
		if f.Key != "key" {
			t.Errorf("String().Key = %q, want %q", f.Key, "key")
		}
		if f.Value != "value" {
			t.Errorf("String().Value = %q, want %q", f.Value, "value")
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("count", 42)
		if f.Key != "count" {
			t.Errorf("Int().Key = %q, want %q", f.Key, "count")
		}
		if f.Value != 42 {
			t.Errorf("Int().Value = %v, want %v", f.Value, 42)
		}
	})

	t.Run("Int64 creates field with key and int64 value", func(t *testing.T) {
		f := Int64("target", -12345)
		if f.Key != "target" {
			t.Errorf("Int64().Key = %q, want %q", f.Key, "target")
		}
		if f.Value != int64(-12345) {
			t.Errorf("Int64().Value = %v, want %v", f.Value, int64(-12345))
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("speedup", 3.14159)
		if f.Key != "speedup" {
			t.Errorf("Float64().Key = %q, want %q", f.Key, "speedup")
		}
		if f.Value != 3.14159 {
			t.Errorf("Float64().Value = %v, want %v", f.Value, 3.14159)
		}
	})

	t.Run("Dur creates field with duration value", func(t *testing.T) {
		f := Dur("elapsed", 5*time.Millisecond)
		if f.Key != "elapsed" {
			t.Errorf("Dur().Key = %q, want %q", f.Key, "elapsed")
		}
		if f.Value != 5*time.Millisecond {
			t.Errorf("Dur().Value = %v, want %v", f.Value, 5*time.Millisecond)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	adapter := NewZerologAdapter(zl)

	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-component")

	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "test-component") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestLogLevels verifies each level emits its level tag in JSON output.
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	tests := []struct {
		name  string
		log   func(string, ...Field)
		level string
	}{
		{"Debug", adapter.Debug, "debug"},
		{"Info", adapter.Info, "info"},
		{"Warn", adapter.Warn, "warn"},
		{"Error", adapter.Error, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("msg")
			if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
				t.Errorf("%s() output = %s, want level %q", tt.name, buf.String(), tt.level)
			}
		})
	}
}

// TestFieldEncoding verifies typed fields are encoded with their native JSON types.
func TestFieldEncoding(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("encoded",
		String("s", "abc"),
		Int("i", 7),
		Int64("i64", -9),
		Float64("f", 1.5),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{`"s":"abc"`, `"i":7`, `"i64":-9`, `"f":1.5`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

// TestNopLogger verifies the no-op logger is safe to call.
func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("a")
	l.Info("b", String("k", "v"))
	l.Warn("c")
	l.Error("d", Err(errors.New("ignored")))
}
