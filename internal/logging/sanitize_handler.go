package logging

import (
	"context"
	"log/slog"
	"strings"
)

// reservedKeys are attribute names that collide with the top-level fields of
// a JSON log record. Colliding attributes are renamed with the field prefix
// instead of being dropped or overwriting the record fields.
var reservedKeys = []string{
	"time",
	"level",
	"msg",
	"source",
}

var sensitiveKeys = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"authorization",
}

const renamePrefix = "field_"

// SanitizeHandler wraps a slog.Handler, renaming reserved attribute keys and
// masking sensitive values before delegating.
type SanitizeHandler struct {
	next slog.Handler
}

// NewSanitizeHandler creates a handler that sanitizes attributes before
// passing records downstream.
func NewSanitizeHandler(next slog.Handler) *SanitizeHandler {
	return &SanitizeHandler{next: next}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SanitizeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// WithAttrs returns a new handler with additional, sanitized attributes.
func (h *SanitizeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		sanitized = append(sanitized, sanitizeAttr(attr))
	}
	return &SanitizeHandler{next: h.next.WithAttrs(sanitized)}
}

// WithGroup returns a new handler with an appended group name.
func (h *SanitizeHandler) WithGroup(name string) slog.Handler {
	return &SanitizeHandler{next: h.next.WithGroup(name)}
}

// Handle sanitizes all record attributes and delegates to the wrapped handler.
func (h *SanitizeHandler) Handle(ctx context.Context, record slog.Record) error {
	sanitized := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(attr))
		return true
	})

	return h.next.Handle(ctx, sanitized)
}

func sanitizeAttr(attr slog.Attr) slog.Attr {
	if isReservedKey(attr.Key) {
		attr.Key = renamePrefix + attr.Key
	}
	if isSensitiveKey(attr.Key) {
		attr.Value = slog.StringValue("***")
	}
	return attr
}

func isReservedKey(key string) bool {
	for _, reserved := range reservedKeys {
		if strings.EqualFold(key, reserved) {
			return true
		}
	}
	return false
}

func isSensitiveKey(key string) bool {
	for _, sensitive := range sensitiveKeys {
		if strings.EqualFold(key, sensitive) {
			return true
		}
	}
	return false
}
