package overlay

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/lightningnetwork/lnd/ticker"
)

// Renderer draws the messages of a Queue as colored lines on a terminal.
type Renderer struct {
	w       io.Writer
	queue   *Queue
	noColor bool
}

// NewRenderer returns a renderer drawing q to w. Colors are left out when
// noColor is set, e.g. when w is not a terminal.
func NewRenderer(w io.Writer, q *Queue, noColor bool) *Renderer {
	return &Renderer{
		w:       w,
		queue:   q,
		noColor: noColor,
	}
}

// Render draws one frame: every visible message, newest first. It returns
// the number of lines written in full, which is short of the visible count
// when the writer fails part way.
func (r *Renderer) Render() (int, error) {
	var drawn int
	for _, msg := range r.queue.Snapshot() {
		c := color.New(msg.Color.attribute())
		if r.noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}

		if _, err := c.Fprintln(r.w, msg.Text); err != nil {
			return drawn, err
		}
		drawn++
	}

	return drawn, nil
}

// Run draws a frame on every tick of t until ctx is done. Render failures
// are logged and do not stop the loop.
func (r *Renderer) Run(ctx context.Context, t ticker.Ticker) {
	t.Resume()
	defer t.Stop()

	for {
		select {
		case <-t.Ticks():
			if _, err := r.Render(); err != nil {
				log.Errorf("Unable to render overlay: %v", err)
			}

		case <-ctx.Done():
			return
		}
	}
}
