package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/isseis/go-conn-diag/internal/connstr"
	"github.com/isseis/go-conn-diag/internal/quoting"
)

// sensitiveKeys are attribute keys whose values are always masked,
// matched case-insensitively as substrings.
var sensitiveKeys = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"authorization",
	"api_key",
	"apikey",
}

// RedactingHandler is a decorator that redacts sensitive information before
// forwarding records to the underlying handler. It masks values of
// secret-keyed attributes, masks passwords embedded in connection-string
// values, and renders []byte attribute values as printable quoted text.
type RedactingHandler struct {
	handler     slog.Handler
	placeholder string
}

// NewRedactingHandler creates a new redacting handler that wraps handler.
func NewRedactingHandler(handler slog.Handler, placeholder string) *RedactingHandler {
	return &RedactingHandler{handler: handler, placeholder: placeholder}
}

// Enabled reports whether the handler handles records at the given level
func (r *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.handler.Enabled(ctx, level)
}

// Handle redacts the log record and forwards it to the underlying handler
func (r *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(r.redactAttr(attr))
		return true
	})
	return r.handler.Handle(ctx, newRecord)
}

// WithAttrs returns a new RedactingHandler with the given attributes
func (r *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		redacted = append(redacted, r.redactAttr(attr))
	}
	return &RedactingHandler{handler: r.handler.WithAttrs(redacted), placeholder: r.placeholder}
}

// WithGroup returns a new RedactingHandler with the given group name
func (r *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: r.handler.WithGroup(name), placeholder: r.placeholder}
}

func (r *RedactingHandler) redactAttr(attr slog.Attr) slog.Attr {
	if isSensitiveKey(attr.Key) {
		return slog.String(attr.Key, r.placeholder)
	}

	switch attr.Value.Kind() {
	case slog.KindString:
		s := attr.Value.String()
		if redacted, changed := r.redactConnString(s); changed {
			return slog.String(attr.Key, redacted)
		}
		return attr

	case slog.KindGroup:
		group := attr.Value.Group()
		redacted := make([]slog.Attr, 0, len(group))
		for _, a := range group {
			redacted = append(redacted, r.redactAttr(a))
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}

	case slog.KindAny:
		if b, ok := attr.Value.Any().([]byte); ok {
			return quoting.Attr(attr.Key, b)
		}
		return attr

	default:
		return attr
	}
}

// redactConnString masks the password of a connection-string-shaped value.
// Only values carrying both a scheme delimiter and credentials are touched,
// so ordinary prose with '@' signs passes through unchanged.
func (r *RedactingHandler) redactConnString(s string) (string, bool) {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s, false
	}
	u, err := connstr.ParseString(s)
	if err != nil || !u.HasPassword {
		return s, false
	}
	return u.Redacted(r.placeholder), true
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
