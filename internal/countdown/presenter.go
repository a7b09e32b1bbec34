package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// UpdateInterval is how often the display text is refreshed.
const UpdateInterval = time.Second

// TimeSource supplies the current time. clock.Source satisfies it.
type TimeSource interface {
	Now() time.Time
}

// Sink receives the formatted countdown text.
type Sink interface {
	SetText(string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(string)

// SetText implements Sink.
func (f SinkFunc) SetText(s string) { f(s) }

// Snapshot is the most recent countdown state.
type Snapshot struct {
	Now       time.Time `json:"now"`
	Target    time.Time `json:"target"`
	Remaining Duration  `json:"remaining"`
	Text      string    `json:"text"`
}

// Presenter formats the remaining time against a TimeSource and pushes it to
// its sinks.
type Presenter struct {
	src   TimeSource
	loc   *time.Location
	month time.Month
	day   int

	mu    sync.Mutex
	sinks []Sink
	last  Snapshot
}

// Option customises a Presenter.
type Option func(*Presenter)

// WithLocation sets the zone the target date is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(p *Presenter) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithDate overrides the target month and day. Dates rejected by ValidDate
// leave the default in place.
func WithDate(month time.Month, day int) Option {
	return func(p *Presenter) {
		if ValidDate(month, day) {
			p.month, p.day = month, day
		}
	}
}

// NewPresenter returns a presenter reading src and writing to sinks.
func NewPresenter(src TimeSource, sinks []Sink, opts ...Option) *Presenter {
	p := &Presenter{
		src:   src,
		loc:   time.Local,
		month: DefaultMonth,
		day:   DefaultDay,
		sinks: append([]Sink(nil), sinks...),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddSink registers another receiver. It gets the current text immediately
// if an update has already happened.
func (p *Presenter) AddSink(s Sink) {
	p.mu.Lock()
	p.sinks = append(p.sinks, s)
	text := p.last.Text
	p.mu.Unlock()
	if text != "" {
		s.SetText(text)
	}
}

// Update recomputes the countdown and writes it to every sink.
func (p *Presenter) Update() Snapshot {
	now := p.src.Now()
	target := Target(now, p.loc, p.month, p.day)
	rem := Split(now, target)
	snap := Snapshot{Now: now, Target: target, Remaining: rem, Text: Format(rem)}

	p.mu.Lock()
	p.last = snap
	sinks := append([]Sink(nil), p.sinks...)
	p.mu.Unlock()

	for _, s := range sinks {
		s.SetText(snap.Text)
	}
	return snap
}

// Last returns the snapshot from the most recent Update.
func (p *Presenter) Last() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Run updates immediately and then once per UpdateInterval on clk until ctx
// is done.
func (p *Presenter) Run(ctx context.Context, clk clockwork.Clock) {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	p.Update()
	ticker := clk.NewTicker(UpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.Update()
		}
	}
}
