// Package overlay keeps the transient on-screen debug messages and draws
// them on a terminal.
package overlay

import (
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// NewKey is the message key that always adds a new message instead of
// replacing the message of an existing key.
const NewKey = -1

// Message is one line of overlay text.
type Message struct {
	// Key identifies the message for replacement. NewKey messages are
	// never replaced.
	Key int

	// Text is the line to draw.
	Text string

	// Color is the color the line is drawn in.
	Color Color

	// Added is when the message was last added or replaced.
	Added time.Time

	// Expires is when the message stops being drawn. It equals Added for
	// single frame messages.
	Expires time.Time

	// singleFrame marks a message added with a non-positive duration. It
	// is drawn by exactly one snapshot.
	singleFrame bool
}

// Queue holds the overlay messages that have not expired yet. It is safe for
// concurrent use.
type Queue struct {
	clock       clock.Clock
	maxMessages int

	mu sync.Mutex

	// messages is ordered oldest first.
	messages []Message
}

// NewQueue returns an empty queue reading time from c. When maxMessages is
// positive, adding beyond it evicts the oldest message.
func NewQueue(c clock.Clock, maxMessages int) *Queue {
	return &Queue{
		clock:       c,
		maxMessages: maxMessages,
	}
}

// AddMessage shows text in color for d. A key other than NewKey replaces the
// message previously added with the same key, restarting its timer. A
// non-positive duration shows the message for a single frame.
func (q *Queue) AddMessage(key int, d time.Duration, c Color, text string) {
	now := q.clock.Now()
	msg := Message{
		Key:         key,
		Text:        text,
		Color:       c,
		Added:       now,
		Expires:     now.Add(d),
		singleFrame: d <= 0,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if key != NewKey {
		for i := range q.messages {
			if q.messages[i].Key != key {
				continue
			}

			// Move the replacement to the newest position.
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			break
		}
	}

	q.messages = append(q.messages, msg)

	if q.maxMessages > 0 && len(q.messages) > q.maxMessages {
		evicted := len(q.messages) - q.maxMessages
		log.Debugf("Overlay full, evicting %d oldest message(s)",
			evicted)

		q.messages = append([]Message(nil), q.messages[evicted:]...)
	}
}

// Snapshot returns the messages to draw now, newest first. Expired messages
// are dropped, and single frame messages are dropped after being returned
// once.
func (q *Queue) Snapshot() []Message {
	now := q.clock.Now()

	q.mu.Lock()
	defer q.mu.Unlock()

	var (
		visible = make([]Message, 0, len(q.messages))
		kept    = q.messages[:0]
	)
	for _, msg := range q.messages {
		switch {
		case msg.singleFrame:
			visible = append(visible, msg)

		case now.Before(msg.Expires):
			visible = append(visible, msg)
			kept = append(kept, msg)
		}
	}
	q.messages = kept

	// Newest on top.
	for i, j := 0, len(visible)-1; i < j; i, j = i+1, j-1 {
		visible[i], visible[j] = visible[j], visible[i]
	}

	return visible
}

// Len returns the number of messages currently queued, including expired
// messages no snapshot has dropped yet.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.messages)
}

// Clear drops every message.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.messages = nil
}
