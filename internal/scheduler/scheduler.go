// Package scheduler implements the keyed timer service described in spec
// §4.5: EmitNow/EmitAfter/Debounce/Throttle/Cancel over a monotonic-version
// keyed entry set, draining ready events in non-decreasing fire-time order.
package scheduler

import (
	"sort"
	"time"
)

// Event is an opaque payload delivered when a scheduled entry fires.
type Event any

// entry is one pending scheduled item.
type entry struct {
	key     string // "" for unkeyed EmitNow/EmitAfter entries
	event   Event
	fireAt  time.Time
	version uint64
	seq     uint64 // insertion order, for tie-breaking
}

// Scheduler holds pending timer entries keyed by an arbitrary string key.
// It is not safe for concurrent use; the runtime loop (§4.9) owns it and
// drives it from the single event-loop goroutine, matching spec §5's
// single-threaded cooperative model.
type Scheduler struct {
	pending  []entry
	versions map[string]uint64
	lastFire map[string]time.Time // for Throttle
	seq      uint64
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		versions: make(map[string]uint64),
		lastFire: make(map[string]time.Time),
	}
}

// EmitNow enqueues event for immediate delivery on the next drain.
func (s *Scheduler) EmitNow(event Event) {
	s.push(entry{event: event, fireAt: time.Time{}})
}

// EmitAfter enqueues an unkeyed event to fire at now+delay.
func (s *Scheduler) EmitAfter(now time.Time, event Event, delay time.Duration) {
	s.push(entry{event: event, fireAt: now.Add(delay)})
}

// Debounce replaces any pending entry sharing key with a fresh now+delay
// firing: calling it N times within delay of each other collapses to exactly
// one fire after the last call quiesces for delay (spec §8 "Debounce
// idempotence").
func (s *Scheduler) Debounce(now time.Time, key string, event Event, delay time.Duration) {
	s.versions[key]++
	s.removeKey(key)
	s.push(entry{key: key, event: event, fireAt: now.Add(delay), version: s.versions[key]})
}

// Throttle fires at most one event per interval for key; calls within an
// already-open interval are dropped rather than queued.
func (s *Scheduler) Throttle(now time.Time, key string, event Event, interval time.Duration) {
	last, ok := s.lastFire[key]
	if ok && now.Sub(last) < interval {
		return
	}
	s.lastFire[key] = now // an accepted call opens the interval
	s.versions[key]++
	s.removeKey(key)
	s.push(entry{key: key, event: event, fireAt: now.Add(interval), version: s.versions[key]})
}

// Cancel removes all pending entries carrying key; no entry for key fires
// again until a new Debounce/Throttle schedules one.
func (s *Scheduler) Cancel(key string) {
	s.versions[key]++ // any in-flight entry for key is now stale
	s.removeKey(key)
	delete(s.lastFire, key)
}

// DrainReady removes and returns all entries whose fireAt is <= now, in
// non-decreasing fire-time order with insertion order as the tiebreaker.
// Entries whose version is stale relative to the current key version are
// silently dropped rather than returned.
func (s *Scheduler) DrainReady(now time.Time) []Event {
	var ready []entry
	var rest []entry
	for _, e := range s.pending {
		if !e.fireAt.After(now) {
			ready = append(ready, e)
		} else {
			rest = append(rest, e)
		}
	}
	s.pending = rest

	sort.SliceStable(ready, func(i, j int) bool {
		if ready[i].fireAt.Equal(ready[j].fireAt) {
			return ready[i].seq < ready[j].seq
		}
		return ready[i].fireAt.Before(ready[j].fireAt)
	})

	events := make([]Event, 0, len(ready))
	for _, e := range ready {
		if e.key != "" {
			if s.versions[e.key] != e.version {
				continue // superseded by a newer Debounce/Throttle
			}
			s.lastFire[e.key] = now
		}
		events = append(events, e.event)
	}
	return events
}

// NextDeadline returns the earliest pending fireAt and true, or the zero
// time and false if nothing is pending. The runtime loop does not consult
// it; it wakes on a fixed tick interval instead.
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	if len(s.pending) == 0 {
		return time.Time{}, false
	}
	next := s.pending[0].fireAt
	for _, e := range s.pending[1:] {
		if e.fireAt.Before(next) {
			next = e.fireAt
		}
	}
	return next, true
}

func (s *Scheduler) push(e entry) {
	e.seq = s.seq
	s.seq++
	s.pending = append(s.pending, e)
}

func (s *Scheduler) removeKey(key string) {
	out := s.pending[:0]
	for _, e := range s.pending {
		if e.key != key {
			out = append(out, e)
		}
	}
	s.pending = out
}
