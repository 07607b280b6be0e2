// Package metrics counts what happened during a single audit run.
package metrics

import (
	"time"
)

// Collector accumulates counters for one run.
//
// It is owned by the goroutine driving the run and is not safe for
// concurrent use.
type Collector struct {
	requestsTotal int
	pagesVisited  int
	pagesCrawled  int
	probesTotal   int
	skipsTotal    int

	responseTimesSum time.Duration
	responseTimesNum int

	skips       map[string]int
	statusCodes map[int]int

	startTime time.Time
}

// New creates a new metrics collector.
func New() *Collector {
	return &Collector{
		skips:       make(map[string]int),
		statusCodes: make(map[int]int),
		startTime:   time.Now(),
	}
}

// RecordRequest records an outgoing HTTP request.
func (c *Collector) RecordRequest() {
	c.requestsTotal++
}

// RecordResponseTime records how long a request took.
func (c *Collector) RecordResponseTime(d time.Duration) {
	c.responseTimesSum += d
	c.responseTimesNum++
}

// RecordStatusCode records an HTTP status code.
func (c *Collector) RecordStatusCode(code int) {
	c.statusCodes[code]++
}

// RecordPageVisited counts a URL taken off the crawl queue and marked visited.
func (c *Collector) RecordPageVisited() {
	c.pagesVisited++
}

// RecordPageCrawled counts a visited URL that answered 200 and was parsed.
func (c *Collector) RecordPageCrawled() {
	c.pagesCrawled++
}

// RecordProbe counts a well-known path probe.
func (c *Collector) RecordProbe() {
	c.probesTotal++
}

// RecordSkip counts a URL or path dropped for the given reason.
func (c *Collector) RecordSkip(reason string) {
	c.skipsTotal++
	c.skips[reason]++
}

// Snapshot is an immutable copy of the collector's counters.
type Snapshot struct {
	RequestsTotal       int            `json:"requests_total"`
	PagesVisited        int            `json:"pages_visited"`
	PagesCrawled        int            `json:"pages_crawled"`
	ProbesTotal         int            `json:"probes_total"`
	SkipsTotal          int            `json:"skips_total"`
	Skips               map[string]int `json:"skips"`
	StatusCodes         map[int]int    `json:"status_codes"`
	AverageResponseTime time.Duration  `json:"average_response_time"`
	Uptime              time.Duration  `json:"uptime"`
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	snap := Snapshot{
		RequestsTotal: c.requestsTotal,
		PagesVisited:  c.pagesVisited,
		PagesCrawled:  c.pagesCrawled,
		ProbesTotal:   c.probesTotal,
		SkipsTotal:    c.skipsTotal,
		Skips:         make(map[string]int, len(c.skips)),
		StatusCodes:   make(map[int]int, len(c.statusCodes)),
		Uptime:        time.Since(c.startTime),
	}

	for k, v := range c.skips {
		snap.Skips[k] = v
	}
	for k, v := range c.statusCodes {
		snap.StatusCodes[k] = v
	}
	if c.responseTimesNum > 0 {
		snap.AverageResponseTime = c.responseTimesSum / time.Duration(c.responseTimesNum)
	}

	return snap
}

// Summary returns the snapshot as loggable key/value pairs.
func (s Snapshot) Summary() map[string]interface{} {
	return map[string]interface{}{
		"requests":          s.RequestsTotal,
		"pages_visited":     s.PagesVisited,
		"pages_crawled":     s.PagesCrawled,
		"probes":            s.ProbesTotal,
		"skipped":           s.SkipsTotal,
		"avg_response_time": s.AverageResponseTime.String(),
	}
}
