package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestAddValidates(t *testing.T) {
	s := New(clockwork.NewFakeClock())
	if err := s.Every("", time.Second, func() {}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := s.Every("x", 0, func() {}); err == nil {
		t.Fatal("expected error for zero interval")
	}
	if err := s.Add(Task{Name: "x", Interval: time.Second}); err == nil {
		t.Fatal("expected error for nil run")
	}
	if err := s.Every("x", time.Second, func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Every("x", time.Second, func() {}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestTasksTickIndependently(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := New(fc)
	var fast, slow atomic.Int64
	_ = s.Every("countdown", time.Second, func() { fast.Add(1) })
	_ = s.Every("release", 12*time.Second, func() { slow.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	if err := fc.BlockUntilContext(ctx, 2); err != nil {
		t.Fatalf("tickers not registered: %v", err)
	}

	for i := 1; i <= 12; i++ {
		fc.Advance(time.Second)
		want := int64(i)
		waitFor(t, func() bool { return fast.Load() == want })
	}
	waitFor(t, func() bool { return slow.Load() == 1 })

	cancel()
	<-done
	if s.Runs("countdown") != 12 || s.Runs("release") != 1 {
		t.Fatalf("unexpected run counts: countdown=%d release=%d", s.Runs("countdown"), s.Runs("release"))
	}
}

func TestImmediateTaskRunsBeforeFirstTick(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := New(fc)
	var n atomic.Int64
	_ = s.Add(Task{Name: "resync", Interval: 5 * time.Minute, Immediate: true, Run: func(context.Context) { n.Add(1) }})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)
	waitFor(t, func() bool { return n.Load() == 1 })
}

func TestPanickingTaskKeepsRunning(t *testing.T) {
	fc := clockwork.NewFakeClock()
	s := New(fc)
	var calls atomic.Int64
	_ = s.Every("frame", time.Millisecond, func() {
		calls.Add(1)
		panic("boom")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker not registered: %v", err)
	}
	fc.Advance(time.Millisecond)
	waitFor(t, func() bool { return calls.Load() == 1 })
	fc.Advance(time.Millisecond)
	waitFor(t, func() bool { return calls.Load() == 2 })
	cancel()
	<-done
}
