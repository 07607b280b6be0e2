// Package http performs the GET requests an audit run needs.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/PentesterFlow/accessauditor/internal/errors"
)

// DefaultUserAgent is a browser-like User-Agent sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const (
	maxRedirects = 30
	maxBodySize  = 5 * 1024 * 1024
)

// Policy controls a single GET.
type Policy struct {
	Timeout         time.Duration
	FollowRedirects bool
}

var (
	// CrawlPolicy is used for pages reached by following links.
	CrawlPolicy = Policy{Timeout: 10 * time.Second, FollowRedirects: true}

	// ProbePolicy is used for well-known paths; a 3xx is reported as-is.
	ProbePolicy = Policy{Timeout: 5 * time.Second, FollowRedirects: false}
)

// Config holds client configuration.
type Config struct {
	UserAgent          string
	InsecureSkipVerify bool
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{UserAgent: DefaultUserAgent}
}

// Response is a fetched page with its body decoded to UTF-8.
type Response struct {
	URL        string
	StatusCode int
	Body       string
	Duration   time.Duration
}

// Client issues GET requests with a fixed set of headers. Cookies set by
// any response are kept for the client's lifetime and sent on later
// requests and redirect hops.
type Client struct {
	transport http.RoundTripper
	jar       http.CookieJar
	userAgent string
}

// NewClient creates a new client.
func NewClient(config Config) *Client {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	// cookiejar.New only fails on invalid options.
	jar, _ := cookiejar.New(nil)

	return &Client{
		transport: transport,
		jar:       jar,
		userAgent: config.UserAgent,
	}
}

func (c *Client) httpClient(policy Policy) *http.Client {
	return &http.Client{
		Transport: c.transport,
		Jar:       c.jar,
		Timeout:   policy.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if !policy.FollowRedirects {
				return http.ErrUseLastResponse
			}
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// Get fetches targetURL under policy. Any returned error is a
// *errors.FetchError.
func (c *Client) Get(ctx context.Context, targetURL string, policy Policy) (*Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, errors.NewParseError(targetURL, "request_creation", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient(policy).Do(req)
	if err != nil {
		return nil, errors.Categorize(err, targetURL)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Categorize(err, targetURL)
	}

	result := &Response{
		URL:        targetURL,
		StatusCode: resp.StatusCode,
		Body:       decode(raw, resp.Header.Get("Content-Type")),
		Duration:   time.Since(start),
	}

	return result, nil
}

// decode converts raw to UTF-8 using the declared or sniffed charset.
func decode(raw []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
