package engine

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback for cancellation
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Duration
	fn       func()
}

// Scheduler is a tick-driven delay queue
// Callbacks run on the caller's goroutine during Advance, never concurrently
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers []timer // sorted by deadline, then id
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once d of game time has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := timer{id: s.nextID, deadline: s.now + d, fn: fn}

	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].deadline > t.deadline
	})
	s.timers = append(s.timers, timer{})
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t.id
}

// Cancel removes a pending timer, returns false if it already fired or was cleared
func (s *Scheduler) Cancel(id TimerID) bool {
	for i := range s.timers {
		if s.timers[i].id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves game time forward and fires every due timer in deadline order
// Timers scheduled by a callback fire in the same call if already due
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	fired := 0
	for len(s.timers) > 0 && s.timers[0].deadline <= s.now {
		t := s.timers[0]
		s.timers = s.timers[1:]
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of scheduled timers
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Remaining returns time until timer id fires, ok is false if it is not pending
func (s *Scheduler) Remaining(id TimerID) (time.Duration, bool) {
	for _, t := range s.timers {
		if t.id == id {
			return t.deadline - s.now, true
		}
	}
	return 0, false
}

// Now returns accumulated game time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Clear drops every pending timer without firing it
func (s *Scheduler) Clear() {
	s.timers = s.timers[:0]
}
