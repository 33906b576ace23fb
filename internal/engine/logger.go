package engine

import (
	"context"
	"log/slog"
	"sync"
)

// warningCollector is a slog.Handler that forwards every record to the
// wrapped handler and additionally keeps warn-level messages, so a build
// can persist the warnings a unit produced.
type warningCollector struct {
	inner slog.Handler

	mu       sync.Mutex
	messages []string
}

func newWarningCollector(inner slog.Handler) *warningCollector {
	return &warningCollector{inner: inner}
}

func (c *warningCollector) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn || c.inner.Enabled(ctx, level)
}

func (c *warningCollector) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level == slog.LevelWarn {
		c.mu.Lock()
		c.messages = append(c.messages, rec.Message)
		c.mu.Unlock()
	}
	if c.inner.Enabled(ctx, rec.Level) {
		return c.inner.Handle(ctx, rec)
	}
	return nil
}

func (c *warningCollector) WithAttrs(attrs []slog.Attr) slog.Handler {
	// attrs only affect the forwarded records; collection stays shared
	return &forwardingHandler{collector: c, inner: c.inner.WithAttrs(attrs)}
}

func (c *warningCollector) WithGroup(name string) slog.Handler {
	return &forwardingHandler{collector: c, inner: c.inner.WithGroup(name)}
}

// Warnings returns the collected warn-level messages.
func (c *warningCollector) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// forwardingHandler keeps collecting into the parent collector while
// carrying derived attrs or groups on the forwarding side.
type forwardingHandler struct {
	collector *warningCollector
	inner     slog.Handler
}

func (h *forwardingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= slog.LevelWarn || h.inner.Enabled(ctx, level)
}

func (h *forwardingHandler) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level == slog.LevelWarn {
		h.collector.mu.Lock()
		h.collector.messages = append(h.collector.messages, rec.Message)
		h.collector.mu.Unlock()
	}
	if h.inner.Enabled(ctx, rec.Level) {
		return h.inner.Handle(ctx, rec)
	}
	return nil
}

func (h *forwardingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &forwardingHandler{collector: h.collector, inner: h.inner.WithAttrs(attrs)}
}

func (h *forwardingHandler) WithGroup(name string) slog.Handler {
	return &forwardingHandler{collector: h.collector, inner: h.inner.WithGroup(name)}
}
