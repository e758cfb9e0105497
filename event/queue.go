package event

import (
	"sync/atomic"

	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/vmath"
)

// Queue is a lock-free MPSC ring buffer for presentation events
// Push may be called from any goroutine, Drain only from the consumer
// Overflow: oldest events are overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool // true once the slot is fully written
	head      atomic.Uint64
	tail      atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event, O(1) amortized
func (q *Queue) Push(ev Event) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		q.events[idx] = ev
		q.published[idx].Store(true)

		head := q.head.Load()
		if next-head > parameter.EventQueueSize {
			q.head.CompareAndSwap(head, next-parameter.EventQueueSize)
		}
		return
	}
}

// Emit is shorthand for pushing an event built from its parts
func (q *Queue) Emit(t EventType, pos vmath.Vec2, value int) {
	q.Push(Event{Type: t, Position: pos, Value: value})
}

// Drain returns pending events in FIFO order and empties the queue
func (q *Queue) Drain() []Event {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > parameter.EventQueueSize {
			avail = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]Event, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break // writer incomplete
			}
			out = append(out, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if n := int(tail - head); n < parameter.EventQueueSize {
		return n
	}
	return parameter.EventQueueSize
}
