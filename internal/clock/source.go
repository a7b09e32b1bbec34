// Package clock provides a network-anchored wall clock. A Source captures a
// reference timestamp from a Fetcher and extrapolates it with the local
// monotonic clock until the next sync.
package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultSyncTimeout bounds a single fetch so startup never hangs.
const DefaultSyncTimeout = 5 * time.Second

// DefaultResyncInterval is how often a running Source refreshes its anchor.
const DefaultResyncInterval = 5 * time.Minute

// ErrNoFetcher is returned by Sync when the source has nothing to fetch from.
var ErrNoFetcher = errors.New("no time fetcher configured")

// State is the sync state of a Source.
type State int

const (
	// Unsynced means no anchor has been captured yet.
	Unsynced State = iota
	// Synced means an anchor (remote or local fallback) is in use.
	Synced
)

func (s State) String() string {
	switch s {
	case Synced:
		return "synced"
	default:
		return "unsynced"
	}
}

// Fetcher returns the current wall-clock time from some reference.
type Fetcher interface {
	Fetch(ctx context.Context) (time.Time, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (time.Time, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) (time.Time, error) { return f(ctx) }

// Status is a point-in-time view of a Source, suitable for JSON output.
type Status struct {
	State     string    `json:"state"`
	Anchor    time.Time `json:"anchor"`
	Captured  time.Time `json:"captured"`
	Fallback  bool      `json:"fallback"`
	LastError string    `json:"last_error,omitempty"`
	Syncs     int       `json:"syncs"`
	Failures  int       `json:"failures"`
}

// Summary describes the sync state in a few words for status lines.
func (st Status) Summary() string {
	switch {
	case st.State == Unsynced.String():
		return "syncing time..."
	case st.Fallback:
		return "local time"
	case st.LastError != "":
		return "network time (stale)"
	default:
		return "network time"
	}
}

// Source is a wall clock anchored to a remote reference. It is safe for
// concurrent use.
type Source struct {
	clock   clockwork.Clock
	fetcher Fetcher
	timeout time.Duration

	mu       sync.RWMutex
	state    State
	anchor   time.Time
	captured time.Time
	fallback bool
	lastErr  error
	syncs    int
	failures int
}

// Option configures a Source.
type Option func(*Source)

// WithClock replaces the local clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Source) { s.clock = c }
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSource returns an unsynced Source reading from f.
func NewSource(f Fetcher, opts ...Option) *Source {
	s := &Source{
		clock:   clockwork.NewRealClock(),
		fetcher: f,
		timeout: DefaultSyncTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync fetches a fresh anchor. When the very first attempt fails the local
// clock becomes the anchor; later failures keep the previous anchor. The
// returned error is informational: the Source is always usable afterwards.
func (s *Source) Sync(ctx context.Context) error {
	ref, err := s.fetch(ctx)
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		s.failures++
		if s.state == Unsynced {
			s.anchor = now
			s.captured = now
			s.state = Synced
			s.fallback = true
			log.Warn().Err(err).Msg("time sync failed, using local clock")
		} else {
			log.Warn().
				Err(err).
				Time("anchor", s.anchor).
				Msg("time re-sync failed, keeping previous anchor")
		}
		return fmt.Errorf("sync time: %w", err)
	}

	s.anchor = ref
	s.captured = now
	s.state = Synced
	s.fallback = false
	s.lastErr = nil
	s.syncs++
	log.Debug().
		Time("anchor", ref).
		Dur("skew", ref.Sub(now)).
		Msg("time synced")
	return nil
}

func (s *Source) fetch(ctx context.Context) (time.Time, error) {
	if s.fetcher == nil {
		return time.Time{}, ErrNoFetcher
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.fetcher.Fetch(ctx)
}

// Now returns the anchor advanced by the local time elapsed since it was
// captured. Before the first sync it returns local time.
func (s *Source) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == Unsynced {
		return s.clock.Now()
	}
	return s.anchor.Add(s.clock.Since(s.captured))
}

// State reports whether an anchor has been captured.
func (s *Source) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status returns a snapshot of the sync bookkeeping.
func (s *Source) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		State:    s.state.String(),
		Anchor:   s.anchor,
		Captured: s.captured,
		Fallback: s.fallback,
		Syncs:    s.syncs,
		Failures: s.failures,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}
