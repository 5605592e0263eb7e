// Package queue holds vehicles that arrived while the lot was full.
package queue

import "time"

// Entry is one waiting vehicle. EnqueuedAt is preserved so that a
// later drain can account the true wait duration, not a fresh arrival
// time.
type Entry struct {
	Plate      string
	EnqueuedAt time.Time
}

// WaitQueue is a strict FIFO holding area. It is not safe for
// concurrent use on its own; the coordinator mutates it under its
// lock.
type WaitQueue struct {
	entries []Entry
}

func New() *WaitQueue {
	return &WaitQueue{}
}

// Push appends a new entry at the tail.
func (q *WaitQueue) Push(plate string, enqueuedAt time.Time) {
	q.entries = append(q.entries, Entry{Plate: plate, EnqueuedAt: enqueuedAt})
}

// Pop removes and returns the head entry. The popped entry is never
// re-enqueued; a failed drain drops it.
func (q *WaitQueue) Pop() (Entry, bool) {
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}

// Remove deletes the first entry for plate, preserving the order of
// the rest. It reports whether anything was removed.
func (q *WaitQueue) Remove(plate string) bool {
	for i, e := range q.entries {
		if e.Plate == plate {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Position returns the 1-based queue position of plate, or 0 when the
// plate is not waiting.
func (q *WaitQueue) Position(plate string) int {
	for i, e := range q.entries {
		if e.Plate == plate {
			return i + 1
		}
	}
	return 0
}

// Contains reports whether plate is currently waiting.
func (q *WaitQueue) Contains(plate string) bool {
	return q.Position(plate) > 0
}

func (q *WaitQueue) Len() int {
	return len(q.entries)
}
