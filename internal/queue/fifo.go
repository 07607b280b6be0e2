// Package queue provides the crawl frontier.
package queue

// FIFO is a first-in first-out queue of URLs.
//
// Duplicates are accepted: callers check their visited set when popping.
// Not safe for concurrent use.
type FIFO struct {
	items []string
	head  int
}

// NewFIFO creates a queue seeded with the given URLs.
func NewFIFO(seed ...string) *FIFO {
	q := &FIFO{items: make([]string, 0, len(seed))}
	q.items = append(q.items, seed...)
	return q
}

// Push appends url to the back of the queue.
func (q *FIFO) Push(url string) {
	q.items = append(q.items, url)
}

// Pop removes and returns the front of the queue.
func (q *FIFO) Pop() (string, bool) {
	if q.IsEmpty() {
		return "", false
	}

	url := q.items[q.head]
	q.items[q.head] = ""
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 64 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0:0], q.items[q.head:]...)
		q.head = 0
	}

	return url, true
}

// Len returns the number of queued URLs.
func (q *FIFO) Len() int {
	return len(q.items) - q.head
}

// IsEmpty reports whether the queue has no URLs.
func (q *FIFO) IsEmpty() bool {
	return q.Len() == 0
}
