// Package trace provides lightweight function entry/data/exit tracing with
// injectable hooks. A Tracer is an explicit value passed to call sites; there
// is no process-wide hook registry, so tests and callers can install and
// replace hooks without affecting each other.
package trace

import (
	"fmt"
	"log/slog"

	"github.com/isseis/go-conn-diag/internal/quoting"
)

// maxStringData bounds string values recorded through Value, keeping trace
// output one-line friendly.
const maxStringData = 16

// Hook receives a trace event: the traced function's name (or a data
// prefix) and a rendered value.
type Hook func(name, data string)

// Tracer dispatches entry, data and exit events to its hooks. Any hook may
// be nil; a nil *Tracer is a valid no-op tracer, so call sites need no
// enabled-check.
type Tracer struct {
	Entry Hook
	Data  Hook
	Exit  Hook
}

// NewSlogTracer returns a Tracer whose hooks log at debug level through
// logger.
func NewSlogTracer(logger *slog.Logger) *Tracer {
	return &Tracer{
		Entry: func(name, _ string) { logger.Debug("enter", "func", name) },
		Data:  func(prefix, data string) { logger.Debug("data", "prefix", prefix, "value", data) },
		Exit:  func(name, data string) { logger.Debug("exit", "func", name, "result", data) },
	}
}

// FuncEntry records entry into the named function.
func (t *Tracer) FuncEntry(name string) {
	if t == nil || t.Entry == nil {
		return
	}
	t.Entry(name, "")
}

// Value records a named intermediate value. Strings longer than 16 bytes
// are truncated; other types render with fmt.
func (t *Tracer) Value(prefix string, value any) {
	if t == nil || t.Data == nil {
		return
	}
	s, ok := value.(string)
	if !ok {
		t.Data(prefix, fmt.Sprint(value))
		return
	}
	if len(s) > maxStringData {
		s = s[:maxStringData]
	}
	t.Data(prefix, s)
}

// Payload records a binary value in quoted printable form.
func (t *Tracer) Payload(prefix string, data []byte) {
	if t == nil || t.Data == nil {
		return
	}
	quoted, err := quoting.QuoteString(data)
	if err != nil {
		quoted = fmt.Sprintf("<%d bytes unquotable: %v>", len(data), err)
	}
	t.Data(prefix, quoted)
}

// FuncExit records exit from the named function with its rendered result.
func (t *Tracer) FuncExit(name string, result any) {
	if t == nil || t.Exit == nil {
		return
	}
	t.Exit(name, fmt.Sprint(result))
}
