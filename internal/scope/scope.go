// Package scope decides which discovered URLs an audit may follow.
package scope

import (
	"strings"
)

// Checker keeps the crawl on URLs whose string form starts with the base URL.
//
// This is a prefix test, not an origin check: "http://example.com.evil.net"
// and "http://example.comics/" both pass for base "http://example.com",
// while "https://example.com" does not.
type Checker struct {
	prefix string
}

// NewChecker creates a checker for baseURL, with trailing slashes removed.
func NewChecker(baseURL string) *Checker {
	return &Checker{prefix: strings.TrimRight(baseURL, "/")}
}

// IsInScope reports whether urlStr may be crawled.
func (c *Checker) IsInScope(urlStr string) bool {
	return strings.HasPrefix(urlStr, c.prefix)
}
