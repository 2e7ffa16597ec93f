package build

import (
	"context"
	"log/slog"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// handlerSet is an implementation of btclog.Handler that fans each record out
// to a set of handlers, typically the console and the log file.
type handlerSet struct {
	level btclogv1.Level
	set   []btclog.Handler
}

// NewHandlerSet constructs a new btclog.Handler that writes to every handler
// in the set. All handlers start at the given level.
func NewHandlerSet(level btclogv1.Level,
	set ...btclog.Handler) btclog.Handler {

	h := &handlerSet{
		set:   set,
		level: level,
	}
	h.SetLevel(level)

	return h
}

// Enabled reports whether at least one handler in the set handles records at
// the given level.
//
// NOTE: this is part of the slog.Handler interface.
func (h *handlerSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.set {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes the record to every handler in the set that is enabled for
// its level. The first error is returned.
//
// NOTE: this is part of the slog.Handler interface.
func (h *handlerSet) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.set {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}

	return nil
}

// WithAttrs returns a new set whose handlers all carry the given attributes.
//
// NOTE: this is part of the slog.Handler interface.
func (h *handlerSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(handler btclog.Handler) slog.Handler {
		return handler.WithAttrs(attrs)
	})
}

// WithGroup returns a new set whose handlers all nest under the given group.
//
// NOTE: this is part of the slog.Handler interface.
func (h *handlerSet) WithGroup(name string) slog.Handler {
	return h.derive(func(handler btclog.Handler) slog.Handler {
		return handler.WithGroup(name)
	})
}

// SubSystem returns a new set whose handlers are tagged with the given
// subsystem, which for this module is the log category.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *handlerSet) SubSystem(tag string) btclog.Handler {
	newSet := make([]btclog.Handler, len(h.set))
	for i, handler := range h.set {
		newSet[i] = handler.SubSystem(tag)
	}

	return NewHandlerSet(h.level, newSet...)
}

// WithPrefix returns a new set whose handlers prefix every message.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *handlerSet) WithPrefix(prefix string) btclog.Handler {
	newSet := make([]btclog.Handler, len(h.set))
	for i, handler := range h.set {
		newSet[i] = handler.WithPrefix(prefix)
	}

	return NewHandlerSet(h.level, newSet...)
}

// SetLevel changes the logging level of the set and all its handlers.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *handlerSet) SetLevel(level btclogv1.Level) {
	for _, handler := range h.set {
		handler.SetLevel(level)
	}
	h.level = level
}

// Level returns the current logging level of the set.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *handlerSet) Level() btclogv1.Level {
	return h.level
}

// derive builds a new set from the result of applying fn to each handler.
// Handlers that stop implementing btclog.Handler after the transformation
// are wrapped so the set keeps its level and subsystem controls.
func (h *handlerSet) derive(
	fn func(btclog.Handler) slog.Handler) *handlerSet {

	newSet := make([]btclog.Handler, len(h.set))
	for i, handler := range h.set {
		derived := fn(handler)
		if bh, ok := derived.(btclog.Handler); ok {
			newSet[i] = bh
			continue
		}

		newSet[i] = &reducedHandler{Handler: derived, parent: handler}
	}

	return &handlerSet{level: h.level, set: newSet}
}

// reducedHandler adapts a plain slog.Handler derived from a btclog.Handler
// back into a btclog.Handler by delegating the btclog specific methods to
// the handler it was derived from.
type reducedHandler struct {
	slog.Handler
	parent btclog.Handler
}

func (r *reducedHandler) SubSystem(tag string) btclog.Handler {
	return r.parent.SubSystem(tag)
}

func (r *reducedHandler) WithPrefix(prefix string) btclog.Handler {
	return r.parent.WithPrefix(prefix)
}

func (r *reducedHandler) SetLevel(level btclogv1.Level) {
	r.parent.SetLevel(level)
}

func (r *reducedHandler) Level() btclogv1.Level {
	return r.parent.Level()
}

// A compile-time check to ensure that handlerSet implements btclog.Handler.
var _ btclog.Handler = (*handlerSet)(nil)
