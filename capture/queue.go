package capture

import (
	"log"
	"sync"

	"github.com/wiresock/netwatch/frame"
)

// MaxQueueDepth bounds the capture queue. The push path drops a frame
// outright, without allocating, once depth reaches this cap.
const MaxQueueDepth = 10000

type node struct {
	entry *frame.Frame
	next  *node
}

// Queue is a bounded FIFO between the capture callback (producer) and the
// analyzer goroutine (consumer), guarded by a single mutex and condition
// variable as spec.md's concurrency model requires.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond

	head, tail *node
	depth      int

	highWater   int
	droppedFull uint64
	stopping    bool
}

// NewQueue constructs an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// TryReserve checks whether the queue has room for one more entry. It must
// be called, and must return true, before the caller copies frame bytes —
// the drop decision precedes allocation, so a full queue never pays the
// cost of copying a frame it is about to discard. A false return already
// incremented the drop counter and logged every 1000th drop.
func (q *Queue) TryReserve() bool {
	q.mu.Lock()
	if q.depth >= MaxQueueDepth {
		q.droppedFull++
		dropped := q.droppedFull
		q.mu.Unlock()
		if dropped%1000 == 0 {
			log.Printf("capture: queue full, dropped_queue_full=%d", dropped)
		}
		return false
	}
	q.mu.Unlock()
	return true
}

// Push links f at the tail. Callers must have already called TryReserve
// and performed any frame-byte copy outside the lock, per the push
// discipline spec.md describes.
func (q *Queue) Push(f *frame.Frame) {
	n := &node{entry: f}

	q.mu.Lock()
	if q.tail == nil {
		q.head, q.tail = n, n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.depth++
	if q.depth > q.highWater {
		q.highWater = q.depth
	}
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop blocks until an entry is available or the queue is draining and
// empty, in which case it returns (nil, false).
func (q *Queue) Pop() (*frame.Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.head == nil && !q.stopping {
		q.cond.Wait()
	}
	if q.head == nil {
		return nil, false
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.depth--
	return n.entry, true
}

// Stop marks the queue as draining and wakes any blocked Pop so it can
// observe emptiness and return.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.stopping = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Depth returns the current number of queued entries.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.depth
}

// HighWaterMark returns the maximum depth observed since construction.
func (q *Queue) HighWaterMark() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.highWater
}

// DroppedFull returns the monotonically increasing count of frames dropped
// because the queue was at capacity.
func (q *Queue) DroppedFull() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.droppedFull
}
