// Package state tracks which URLs an audit run has already visited.
package state

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	minCapacity       = 1000
	falsePositiveRate = 0.001
)

// Deduplicator is an exact set of URL strings. A Bloom filter answers most
// negative lookups; the map behind it settles every positive one.
//
// Not safe for concurrent use.
type Deduplicator struct {
	filter *bloom.BloomFilter
	seen   map[string]struct{}
}

// NewDeduplicator creates a set sized for about capacity URLs.
func NewDeduplicator(capacity int) *Deduplicator {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &Deduplicator{
		filter: bloom.NewWithEstimates(uint(capacity), falsePositiveRate),
		seen:   make(map[string]struct{}, capacity),
	}
}

// Add marks url as seen.
func (d *Deduplicator) Add(url string) {
	if _, ok := d.seen[url]; ok {
		return
	}
	d.seen[url] = struct{}{}
	d.filter.AddString(url)
}

// HasSeen reports whether url was added before. No normalization is done.
func (d *Deduplicator) HasSeen(url string) bool {
	if !d.filter.TestString(url) {
		return false
	}
	_, ok := d.seen[url]
	return ok
}

// Count returns the number of distinct URLs added.
func (d *Deduplicator) Count() int {
	return len(d.seen)
}
