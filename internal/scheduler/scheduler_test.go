package scheduler

import (
	"testing"
	"time"
)

func TestDebounceCollapsesRepeatedCallsToOneFire(t *testing.T) {
	s := New()
	base := time.Now()

	s.Debounce(base, "k", "first", 10*time.Millisecond)
	s.Debounce(base.Add(2*time.Millisecond), "k", "second", 10*time.Millisecond)
	s.Debounce(base.Add(4*time.Millisecond), "k", "third", 10*time.Millisecond)

	// The first two debounce calls scheduled an entry that is now stale;
	// draining before the final entry's fire time must yield nothing.
	if ready := s.DrainReady(base.Add(6 * time.Millisecond)); len(ready) != 0 {
		t.Fatalf("expected no ready events before the settled debounce fires, got %v", ready)
	}

	ready := s.DrainReady(base.Add(15 * time.Millisecond))
	if len(ready) != 1 || ready[0] != "third" {
		t.Fatalf("expected exactly one fire of %q, got %v", "third", ready)
	}
}

func TestThrottleDropsCallsWithinInterval(t *testing.T) {
	s := New()
	base := time.Now()

	s.Throttle(base, "k", "first", 10*time.Millisecond)
	s.Throttle(base.Add(2*time.Millisecond), "k", "second", 10*time.Millisecond)

	ready := s.DrainReady(base.Add(11 * time.Millisecond))
	if len(ready) != 1 || ready[0] != "first" {
		t.Fatalf("expected only the first throttled call to fire, got %v", ready)
	}
}

func TestCancelDropsAPendingEntry(t *testing.T) {
	s := New()
	base := time.Now()

	s.EmitAfter(base, "event", 5*time.Millisecond)
	s.Debounce(base, "k", "debounced", 5*time.Millisecond)
	s.Cancel("k")

	ready := s.DrainReady(base.Add(10 * time.Millisecond))
	if len(ready) != 1 || ready[0] != "event" {
		t.Fatalf("expected only the unkeyed entry to survive cancellation, got %v", ready)
	}
}

func TestDrainReadyOrdersByFireTimeThenInsertion(t *testing.T) {
	s := New()
	base := time.Now()

	s.EmitAfter(base, "b", 5*time.Millisecond)
	s.EmitAfter(base, "a", 1*time.Millisecond)
	s.EmitNow("now")

	ready := s.DrainReady(base.Add(10 * time.Millisecond))
	want := []Event{"now", "a", "b"}
	if len(ready) != len(want) {
		t.Fatalf("got %v, want %v", ready, want)
	}
	for i := range want {
		if ready[i] != want[i] {
			t.Fatalf("got %v, want %v", ready, want)
		}
	}
}

func TestNextDeadlineReportsEarliestPending(t *testing.T) {
	s := New()
	base := time.Now()
	if _, ok := s.NextDeadline(); ok {
		t.Fatalf("expected no deadline on an empty scheduler")
	}

	s.EmitAfter(base, "late", 20*time.Millisecond)
	s.EmitAfter(base, "early", 5*time.Millisecond)

	deadline, ok := s.NextDeadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if !deadline.Equal(base.Add(5 * time.Millisecond)) {
		t.Fatalf("deadline = %v, want %v", deadline, base.Add(5*time.Millisecond))
	}
}
