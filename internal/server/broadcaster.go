package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Event is one message pushed to websocket clients.
type Event struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Chunks int    `json:"chunks,omitempty"`
}

// Broadcaster fans events out to subscribers. Slow subscribers miss events
// rather than block the publisher.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
	last []byte
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan []byte]struct{})}
}

// Subscribe registers a new subscriber. The latest countdown event, if any,
// is queued immediately.
func (b *Broadcaster) Subscribe() chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	if b.last != nil {
		ch <- b.last
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Subscribers returns the current subscriber count.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish encodes ev and delivers it to all subscribers.
func (b *Broadcaster) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("failed to encode event")
		return
	}
	b.mu.Lock()
	if ev.Type == "countdown" {
		b.last = msg
	}
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()
}

// SetText implements countdown.Sink.
func (b *Broadcaster) SetText(s string) {
	b.Publish(Event{Type: "countdown", Text: s})
}

// Close unsubscribes everyone, which ends their websocket write pumps.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
