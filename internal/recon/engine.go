package recon

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PentesterFlow/accessauditor/internal/errors"
	httpc "github.com/PentesterFlow/accessauditor/internal/http"
	"github.com/PentesterFlow/accessauditor/internal/logger"
	"github.com/PentesterFlow/accessauditor/internal/metrics"
	"github.com/PentesterFlow/accessauditor/internal/parser"
	"github.com/PentesterFlow/accessauditor/internal/queue"
	"github.com/PentesterFlow/accessauditor/internal/scope"
	"github.com/PentesterFlow/accessauditor/internal/state"
)

// DefaultMaxPages is the crawl budget when none is given.
const DefaultMaxPages = 30

// Fetcher performs a single GET.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, policy httpc.Policy) (*httpc.Response, error)
}

// Engine runs reconnaissance against one target at a time.
type Engine struct {
	fetcher  Fetcher
	maxPages int
	paths    []string
	log      *logger.Logger
	metrics  *metrics.Collector
	onStage  func(Stage)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPages sets the crawl budget. Values below 1 are ignored.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPages = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithStageHook registers fn to be called as each stage starts.
func WithStageHook(fn func(Stage)) Option {
	return func(e *Engine) {
		e.onStage = fn
	}
}

// WithMetrics sets the collector counters are recorded in. A fresh
// collector is used per run otherwise.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// WithPaths replaces the well-known path list.
func WithPaths(paths []string) Option {
	return func(e *Engine) {
		e.paths = append([]string(nil), paths...)
	}
}

// New creates an engine that fetches through f.
func New(f Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher:  f,
		maxPages: DefaultMaxPages,
		paths:    CommonPaths(),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run holds the state of a single Run call.
type run struct {
	*Engine
	base    string
	scope   *scope.Checker
	acc     *accumulator
	metrics *metrics.Collector
	log     *logger.Logger
}

// Run crawls baseURL, probes the well-known paths and categorizes every
// parameter found. Fetch failures are skipped and counted. The only error
// returned is the context's, in which case there is no result.
func (e *Engine) Run(ctx context.Context, baseURL string) (*Result, error) {
	base := strings.TrimRight(baseURL, "/")

	r := &run{
		Engine:  e,
		base:    base,
		scope:   scope.NewChecker(base),
		acc:     newAccumulator(),
		metrics: e.metrics,
		log:     e.log.WithComponent("recon").WithTarget(base),
	}
	if r.metrics == nil {
		r.metrics = metrics.New()
	}

	e.stage(StageRecon)

	e.stage(StageCrawl)
	if err := r.crawl(ctx); err != nil {
		return nil, err
	}

	e.stage(StageProbe)
	if err := r.probe(ctx); err != nil {
		return nil, err
	}

	e.stage(StageCategorize)
	params := sortedKeys(r.acc.parameters)
	cat := Categorize(params)

	stats := r.metrics.Snapshot()
	r.log.StatsEvent(stats.Summary())

	return r.acc.result(base, cat, stats), nil
}

func (e *Engine) stage(s Stage) {
	if e.onStage != nil {
		e.onStage(s)
	}
}

// crawl visits in-scope pages breadth first until the queue empties or
// maxPages URLs have been visited.
func (r *run) crawl(ctx context.Context) error {
	frontier := queue.NewFIFO(r.base)
	visited := state.NewDeduplicator(r.maxPages)

	for !frontier.IsEmpty() && visited.Count() < r.maxPages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("crawl interrupted: %w", err)
		}

		pageURL, _ := frontier.Pop()
		if visited.HasSeen(pageURL) {
			continue
		}
		visited.Add(pageURL)
		r.metrics.RecordPageVisited()

		links, err := r.visit(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("crawl interrupted: %w", ctx.Err())
			}
			r.skip(pageURL, "crawl", err)
			continue
		}

		for _, link := range links {
			if r.scope.IsInScope(link) && !visited.HasSeen(link) {
				frontier.Push(link)
			}
		}
	}

	r.log.Debugf("Crawl finished: %d visited, %d queued", visited.Count(), frontier.Len())
	if r.metrics.Snapshot().PagesCrawled == 0 {
		r.log.Warnf("No page under %s could be crawled", r.base)
	}
	return nil
}

// visit fetches one page and records what it exposes. It returns the
// page's resolved links.
func (r *run) visit(ctx context.Context, pageURL string) ([]string, error) {
	resp, err := r.fetch(ctx, pageURL, httpc.CrawlPolicy)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		if statusErr := errors.CategorizeHTTPStatus(resp.StatusCode, pageURL); statusErr != nil {
			return nil, statusErr
		}
		return nil, errors.NewStatusError(errors.Unexpected, pageURL, resp.StatusCode)
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.NewParseError(pageURL, "parse_url", err)
	}
	doc, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, errors.NewParseError(pageURL, "parse_html", err)
	}

	r.metrics.RecordPageCrawled()
	r.acc.addEndpoint(endpointPath(u))

	for _, name := range queryParamNames(u.RawQuery) {
		r.acc.addParameter(name)
	}

	links := make([]string, 0)
	for _, href := range doc.Hrefs() {
		if abs, ok := MakeAbsolute(pageURL, href); ok {
			links = append(links, abs)
		}
	}

	for _, sel := range doc.Forms() {
		r.acc.addForm(ExtractForm(sel, pageURL))
	}

	return links, nil
}

// probe requests every well-known path without following redirects.
func (r *run) probe(ctx context.Context) error {
	for _, path := range r.paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("probe interrupted: %w", err)
		}

		target := r.base + path
		r.metrics.RecordProbe()

		resp, err := r.fetch(ctx, target, httpc.ProbePolicy)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("probe interrupted: %w", ctx.Err())
			}
			r.skip(target, "probe", err)
			continue
		}
		r.log.ProbeEvent(target, resp.StatusCode, resp.Duration)

		if resp.StatusCode >= 400 {
			r.skip(target, "probe", errors.CategorizeHTTPStatus(resp.StatusCode, target))
			continue
		}

		r.acc.addEndpoint(path)
		if isAdminPath(path) {
			r.acc.addPanel(AdminPanel{
				URL:    target,
				Status: resp.StatusCode,
				Title:  parser.ExtractTitle(resp.Body),
			})
		}
	}
	return nil
}

func (r *run) fetch(ctx context.Context, target string, policy httpc.Policy) (*httpc.Response, error) {
	r.metrics.RecordRequest()
	resp, err := r.fetcher.Get(ctx, target, policy)
	if err != nil {
		return nil, err
	}
	r.metrics.RecordResponseTime(resp.Duration)
	r.metrics.RecordStatusCode(resp.StatusCode)
	return resp, nil
}

func (r *run) skip(target, operation string, err error) {
	reason := errors.Reason(err)
	r.metrics.RecordSkip(reason)
	r.log.SkipEvent(target, operation, reason, err)
}
