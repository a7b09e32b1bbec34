// Package scheduler runs named periodic tasks on independent tickers.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Task is one periodic job.
type Task struct {
	Name     string
	Interval time.Duration
	// Immediate runs the job once before the first tick.
	Immediate bool
	Run       func(ctx context.Context)
}

// Scheduler owns a set of tasks and drives each from its own ticker.
type Scheduler struct {
	clock clockwork.Clock

	mu    sync.Mutex
	tasks []Task
	runs  map[string]uint64
}

// New returns a scheduler on clk, or the real clock when clk is nil.
func New(clk clockwork.Clock) *Scheduler {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clk, runs: make(map[string]uint64)}
}

// Add registers a task. Tasks must be added before Run.
func (s *Scheduler) Add(t Task) error {
	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}
	if t.Interval <= 0 {
		return fmt.Errorf("task %s: interval must be positive", t.Name)
	}
	if t.Run == nil {
		return fmt.Errorf("task %s: run func is required", t.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tasks {
		if existing.Name == t.Name {
			return fmt.Errorf("task %s already registered", t.Name)
		}
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Every is shorthand for Add with a plain func.
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) error {
	return s.Add(Task{Name: name, Interval: interval, Run: func(context.Context) { fn() }})
}

// Runs reports how many times the named task has executed.
func (s *Scheduler) Runs(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[name]
}

// Run starts every task in its own goroutine and blocks until ctx is done and
// all tasks have returned.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	tasks := append([]Task(nil), s.tasks...)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			s.loop(ctx, t)
		}(t)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	ticker := s.clock.NewTicker(t.Interval)
	defer ticker.Stop()
	if t.Immediate {
		s.invoke(ctx, t)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.invoke(ctx, t)
		}
	}
}

func (s *Scheduler) invoke(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("task", t.Name).Interface("panic", r).Msg("task panicked")
		}
	}()
	t.Run(ctx)
	s.mu.Lock()
	s.runs[t.Name]++
	s.mu.Unlock()
}
