package tether

import (
	"sort"
	"time"
)

// Scheduler is a single-threaded, frame-driven timer queue. The host calls
// Advance from its update loop (the same place a game loop ticks tweens);
// due callbacks fire synchronously inside Advance.
// Every Schedule returns a handle, and re-scheduling a per-node timer must
// be preceded by cancelling the prior handle for that node; the coordinators
// keep one handle slot per node for exactly that purpose.
type Scheduler struct {
	timers  map[uint64]*timer
	nextID  uint64
	now     time.Duration
	fireBuf []*timer
}

type timer struct {
	id       uint64
	deadline time.Duration
	fn       func()
}

// TimerHandle identifies a pending callback. The zero value is inert: it
// cancels nothing and reports Pending() == false.
type TimerHandle struct {
	id uint64
	s  *Scheduler
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[uint64]*timer)}
}

// Schedule registers fn to fire once delay has elapsed across future Advance
// calls. A non-positive delay fires on the next Advance, not immediately.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TimerHandle {
	s.nextID++
	id := s.nextID
	s.timers[id] = &timer{id: id, deadline: s.now + delay, fn: fn}
	return TimerHandle{id: id, s: s}
}

// Cancel drops the pending callback for h. Cancelling an already-fired,
// already-cancelled, or zero handle is a no-op.
func (s *Scheduler) Cancel(h TimerHandle) {
	if h.s != s {
		return
	}
	delete(s.timers, h.id)
}

// Pending reports whether the handle's callback has not yet fired or been
// cancelled.
func (h TimerHandle) Pending() bool {
	if h.s == nil {
		return false
	}
	_, ok := h.s.timers[h.id]
	return ok
}

// Advance moves the scheduler clock forward by dt and fires every due
// callback, ordered by deadline and then by scheduling order so firing is
// deterministic. Callbacks may schedule or cancel other timers; timers
// scheduled during Advance fire no earlier than the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	due := s.fireBuf[:0]
	for _, t := range s.timers {
		if t.deadline <= s.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].id < due[j].id
	})
	for _, t := range due {
		// A callback fired earlier in this Advance may have cancelled t.
		if _, ok := s.timers[t.id]; !ok {
			continue
		}
		delete(s.timers, t.id)
		t.fn()
	}
	s.fireBuf = due[:0]
}

// CancelAll drops every pending callback. Called on Group.Dispose so torn
// down structures are never referenced by late timers.
func (s *Scheduler) CancelAll() {
	for id := range s.timers {
		delete(s.timers, id)
	}
}

// PendingCount returns the number of pending callbacks.
func (s *Scheduler) PendingCount() int {
	return len(s.timers)
}
