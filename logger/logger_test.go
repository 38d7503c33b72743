package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestHandler_SetLevel(t *testing.T) {
	h := NewHandler("test")

	// Debug by default, so startup logging works before config loads
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = false before SetLevel")
	}

	h.SetLevel(slog.LevelWarn)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true after SetLevel(warn)")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false after SetLevel(warn)")
	}

	// Clones share the options, so a clone sees the new level too
	clone := h.WithAttrs([]slog.Attr{slog.String("k", "v")})
	if clone.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("clone Enabled(info) = true after SetLevel(warn)")
	}
}
