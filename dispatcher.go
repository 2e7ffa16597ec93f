package simplelog

import (
	"fmt"
	"time"

	"github.com/simplelogging/simplelog/callsite"
	"github.com/simplelogging/simplelog/overlay"
)

// Overlay is the on-screen message queue lines can be drawn on.
// overlay.Queue implements it.
type Overlay interface {
	// AddMessage shows text in color for d. A key of overlay.NewKey
	// always adds a new message.
	AddMessage(key int, d time.Duration, c overlay.Color, text string)
}

// DispatcherConfig holds the collaborators of a Dispatcher.
type DispatcherConfig struct {
	// Sink receives every valid record.
	Sink Sink

	// Overlay receives the records that ask to be drawn on screen. When
	// nil, screen requests are ignored.
	Overlay Overlay

	// Metrics is optional.
	Metrics *Metrics
}

// Dispatcher routes decorated records to the sink and, on request, to the
// overlay. It holds no state of its own beyond its configuration, so two
// identical Emit calls produce two identical sink calls.
type Dispatcher struct {
	cfg DispatcherConfig
}

// NewDispatcher returns a dispatcher for the given configuration.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{cfg: cfg}
}

// Emit composes the line of rec, pushes it to the overlay when screen asks
// for it and always forwards it to the sink.
//
// A record with a verbosity outside the enumeration is a caller bug: it is
// dropped entirely and reported as a diagnostic.
func (d *Dispatcher) Emit(rec LogRecord, screen ScreenOptions) {
	if !rec.Verbosity.Valid() {
		d.cfg.Metrics.recordDropped()
		callsite.Ensure(fmt.Sprintf("%v: %d used in category %s",
			ErrInvalidVerbosity, uint8(rec.Verbosity),
			rec.Category))

		return
	}

	line := rec.Line()

	if screen.Enabled && d.cfg.Overlay != nil {
		c := screen.Color.UnwrapOr(ColorForVerbosity(rec.Verbosity))
		d.cfg.Overlay.AddMessage(
			overlay.NewKey, screen.Duration, c, line,
		)
		d.cfg.Metrics.screenMessage()
	}

	d.cfg.Sink.Log(rec.Category, rec.Verbosity, line)
	d.cfg.Metrics.lineEmitted(rec.Category, rec.Verbosity)
}

// Screen draws text on the overlay only. The sink never sees it.
func (d *Dispatcher) Screen(duration time.Duration, c overlay.Color,
	text string) {

	if d.cfg.Overlay == nil {
		return
	}

	d.cfg.Overlay.AddMessage(overlay.NewKey, duration, c, text)
	d.cfg.Metrics.screenMessage()
}
