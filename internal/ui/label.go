package ui

import "sync"

// Label holds the countdown text shown over the scene. SetText may be called
// from any goroutine.
type Label struct {
	mu     sync.Mutex
	text   string
	detail string
}

// NewLabel returns an empty label.
func NewLabel() *Label { return &Label{} }

// SetText implements countdown.Sink.
func (l *Label) SetText(s string) {
	l.mu.Lock()
	l.text = s
	l.mu.Unlock()
}

// SetDetail sets the smaller second line, typically the clock sync state.
func (l *Label) SetDetail(s string) {
	l.mu.Lock()
	l.detail = s
	l.mu.Unlock()
}

// Text returns both lines.
func (l *Label) Text() (string, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text, l.detail
}
