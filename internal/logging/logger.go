package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Field represents a single structured logging field as a key/value pair.
// Fields are attached to log events to provide machine-readable context.
type Field struct {
	// Key is the field name in the structured output.
	Key string
	// Value is the field value; typed constructors below cover common cases.
	Value any
}

// String creates a Field holding a string value.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates a Field holding an int value.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates a Field holding an int64 value.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a Field holding a uint64 value.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a Field holding a float64 value.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Dur creates a Field holding a time.Duration value.
func Dur(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a Field holding an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// It decouples components from the concrete logging backend so tests can
// substitute a capturing implementation.
type Logger interface {
	// Debug logs a message at debug level with optional structured fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional structured fields.
	Info(msg string, fields ...Field)
	// Warn logs a message at warn level with optional structured fields.
	Warn(msg string, fields ...Field)
	// Error logs a message at error level with optional structured fields.
	Error(msg string, fields ...Field)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger in a ZerologAdapter.
func NewZerologAdapter(zl zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates the standard application logger: console-formatted
// output on stderr with timestamps.
func NewDefaultLogger() *ZerologAdapter {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	return &ZerologAdapter{logger: zl}
}

// NewLogger creates a logger writing JSON events to w, tagged with a
// component field. Intended for subsystems that want their origin visible
// in aggregated output.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// Debug logs a message at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Warn logs a message at warn level.
func (a *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(a.logger.Warn(), fields).Msg(msg)
}

// Error logs a message at error level.
func (a *ZerologAdapter) Error(msg string, fields ...Field) {
	applyFields(a.logger.Error(), fields).Msg(msg)
}

// applyFields attaches typed fields to a zerolog event. Unknown value types
// fall back to zerolog's reflective Interface encoding.
func applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case time.Duration:
			ev = ev.Dur(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		case nil:
			ev = ev.Interface(f.Key, nil)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// NopLogger is a Logger that discards everything. Useful as a default in
// components where logging is optional.
type NopLogger struct{}

// Debug discards the message.
func (NopLogger) Debug(string, ...Field) {}

// Info discards the message.
func (NopLogger) Info(string, ...Field) {}

// Warn discards the message.
func (NopLogger) Warn(string, ...Field) {}

// Error discards the message.
func (NopLogger) Error(string, ...Field) {}
