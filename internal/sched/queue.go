// internal/sched/queue.go

package sched

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a position does not address
	// an element currently in the queue.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrPriorityIncrease is returned by DecreaseKey when the new priority
	// is larger than the current one.
	ErrPriorityIncrease = errors.New("priority increase")
)

// PriorityQueue is a binary min-heap of tasks ordered by ByPriority.
// The element at position i has children at 2i+1 and 2i+2, and every
// parent is at least as urgent as its children between operations.
//
// The zero value is an empty queue ready for use. A PriorityQueue is
// not safe for concurrent use.
type PriorityQueue struct {
	heap []*Task
}

// NewPriorityQueue returns an empty queue.
func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{}
}

// IsEmpty reports whether the queue holds no tasks.
func (pq *PriorityQueue) IsEmpty() bool {
	return len(pq.heap) == 0
}

// Len returns the number of tasks in the queue.
func (pq *PriorityQueue) Len() int {
	return len(pq.heap)
}

// Insert adds t to the queue. Tasks with equal priorities are allowed.
func (pq *PriorityQueue) Insert(t *Task) {
	pq.heap = append(pq.heap, t)
	pq.siftUp(len(pq.heap) - 1)
}

// ExtractMin removes and returns the most urgent task. It returns
// false, and leaves the queue untouched, if the queue is empty.
func (pq *PriorityQueue) ExtractMin() (*Task, bool) {
	n := len(pq.heap)
	switch n {
	case 0:
		return nil, false
	case 1:
		t := pq.heap[0]
		pq.heap[0] = nil
		pq.heap = pq.heap[:0]
		return t, true
	}
	root := pq.heap[0]
	pq.heap[0] = pq.heap[n-1]
	pq.heap[n-1] = nil // release the reference held by the backing array
	pq.heap = pq.heap[:n-1]
	pq.siftDown(0)
	return root, true
}

// At returns the task currently at position index.
func (pq *PriorityQueue) At(index int) (*Task, error) {
	if err := pq.checkIndex(index); err != nil {
		return nil, err
	}
	return pq.heap[index], nil
}

// DecreaseKey lowers the priority of the task at position index and moves
// it towards the root until the heap order holds again. Since repair only
// ever moves the task upward, raising a priority is refused with
// ErrPriorityIncrease. In both error cases the queue is left unchanged.
func (pq *PriorityQueue) DecreaseKey(index int, priority int) error {
	if err := pq.checkIndex(index); err != nil {
		return err
	}
	t := pq.heap[index]
	if priority > t.Priority {
		return fmt.Errorf("task %d at %d: %w from %d to %d", t.ID, index, ErrPriorityIncrease, t.Priority, priority)
	}
	t.Priority = priority
	pq.siftUp(index)
	return nil
}

// Tasks returns a copy of the queue contents in heap order.
func (pq *PriorityQueue) Tasks() []*Task {
	out := make([]*Task, len(pq.heap))
	copy(out, pq.heap)
	return out
}

func (pq *PriorityQueue) checkIndex(index int) error {
	if index < 0 || index >= len(pq.heap) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(pq.heap))
	}
	return nil
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (pq *PriorityQueue) siftUp(i int) {
	h := pq.heap
	for i > 0 {
		p := parent(i)
		if !ByPriority(h[i], h[p]) {
			break
		}
		h[i], h[p] = h[p], h[i]
		i = p
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	h := pq.heap
	n := len(h)
	for {
		smallest := i
		if l := left(i); l < n && ByPriority(h[l], h[smallest]) {
			smallest = l
		}
		if r := right(i); r < n && ByPriority(h[r], h[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h[i], h[smallest] = h[smallest], h[i]
		i = smallest
	}
}
