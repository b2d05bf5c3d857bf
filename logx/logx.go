// Package logx defines the logging boundary embedders plug into kdbv1.
//
// kdbv1 never aborts an operation because of a non-fatal condition. An
// entry referencing a missing group is dropped and reported through
// Logger.Warnf; an unrecognized TLV field id is kept as raw bytes without
// a warning. The package ships a no-op
// default and a minimal stdlib-backed logger; production users typically
// wire their own adapter (see the logrusx subpackage for one grounded on
// a structured logging library).
package logx

import "log"

// Logger is the embedder-supplied warning sink.
type Logger interface {
	Warnf(format string, args ...any)
}

// nopLogger discards every warning. Used as the default when no Logger
// option is supplied, so warnings are never silently dropped by surprise —
// the no-op behavior is explicit and documented, not accidental.
type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// Nop returns a Logger that discards all warnings.
func Nop() Logger { return nopLogger{} }

// stdLogger adapts the standard library log package to the Logger interface.
type stdLogger struct {
	l *log.Logger
}

// Std returns a Logger backed by the standard library's log.Logger.
// A nil l defaults to log.Default().
func Std(l *log.Logger) Logger {
	if l == nil {
		l = log.Default()
	}

	return stdLogger{l: l}
}

func (s stdLogger) Warnf(format string, args ...any) {
	s.l.Printf("WARN: "+format, args...)
}
