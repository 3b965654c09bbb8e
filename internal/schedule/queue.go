// Package schedule holds deferred work in due-time order. It is not safe for
// concurrent use; the owner drains it from its own loop.
package schedule

import (
	"container/heap"
	"time"
)

// DefaultStagger is the delay between consecutive items of a batch.
const DefaultStagger = 100 * time.Millisecond

type item[T any] struct {
	due   time.Time
	value T
	gen   uint64
	seq   uint64
}

type itemHeap[T any] []item[T]

func (h itemHeap[T]) Len() int { return len(h) }
func (h itemHeap[T]) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h itemHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap[T]) Push(x any)   { *h = append(*h, x.(item[T])) }
func (h *itemHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue releases values once their due time has passed. Items scheduled at the
// same instant come out in scheduling order.
type Queue[T any] struct {
	items itemHeap[T]
	gen   uint64
	seq   uint64
}

func NewQueue[T any]() *Queue[T] { return &Queue[T]{} }

// Schedule queues v for release at due.
func (q *Queue[T]) Schedule(due time.Time, v T) {
	q.seq++
	heap.Push(&q.items, item[T]{due: due, value: v, gen: q.gen, seq: q.seq})
}

// ScheduleBatch queues values starting at start, one every interval.
func (q *Queue[T]) ScheduleBatch(start time.Time, interval time.Duration, values []T) {
	for i, v := range values {
		q.Schedule(Stagger(start, interval, i), v)
	}
}

// Due pops every live value whose due time is not after now.
func (q *Queue[T]) Due(now time.Time) []T {
	var out []T
	for q.items.Len() > 0 && !q.items[0].due.After(now) {
		it := heap.Pop(&q.items).(item[T])
		if it.gen == q.gen {
			out = append(out, it.value)
		}
	}
	return out
}

// Cancel invalidates everything scheduled so far and returns how many live
// items were dropped.
func (q *Queue[T]) Cancel() int {
	n := q.Len()
	q.gen++
	q.items = q.items[:0]
	return n
}

// Len is the number of live pending items.
func (q *Queue[T]) Len() int {
	n := 0
	for _, it := range q.items {
		if it.gen == q.gen {
			n++
		}
	}
	return n
}

// Next reports the due time of the earliest pending item.
func (q *Queue[T]) Next() (time.Time, bool) {
	if q.items.Len() == 0 {
		return time.Time{}, false
	}
	return q.items[0].due, true
}

func (q *Queue[T]) Generation() uint64 { return q.gen }

// Stagger is the due time of the i-th item of a batch.
func Stagger(start time.Time, interval time.Duration, i int) time.Time {
	return start.Add(time.Duration(i) * interval)
}
