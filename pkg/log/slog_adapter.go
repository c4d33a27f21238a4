package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes connection events to an slog.Logger.
// Useful for development when you want to see policy decisions in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Errors log at Warn level,
// everything else at Info.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	level := slog.LevelInfo
	msg := "wifi event"

	switch {
	case event.Attempt != nil:
		msg = "wifi attempt"
		attrs = append(attrs,
			slog.String("ssid", event.Attempt.SSID),
			slog.String("outcome", event.Attempt.Outcome.String()),
		)
		if event.Attempt.Round > 0 {
			attrs = append(attrs, slog.Int("round", event.Attempt.Round))
		}
		if event.Attempt.Cached {
			attrs = append(attrs, slog.Bool("cached", true))
		}
		if event.Attempt.Timeout > 0 {
			attrs = append(attrs, slog.Duration("timeout", event.Attempt.Timeout))
		}
		if event.Attempt.Elapsed > 0 {
			attrs = append(attrs, slog.Duration("elapsed", event.Attempt.Elapsed))
		}
		if event.Attempt.Addr != "" {
			attrs = append(attrs, slog.String("addr", event.Attempt.Addr))
		}
	case event.StateChange != nil:
		msg = "wifi state"
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Store != nil:
		msg = "wifi store"
		if event.Store.Path != "" {
			attrs = append(attrs, slog.String("path", event.Store.Path))
		}
		attrs = append(attrs,
			slog.Int("loaded", event.Store.Loaded),
			slog.Int("skipped", event.Store.Skipped),
			slog.Bool("saved", event.Store.Saved),
		)
	case event.Error != nil:
		msg = "wifi error"
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
