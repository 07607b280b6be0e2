package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PentesterFlow/accessauditor/internal/errors"
)

// =============================================================================
// Policy Tests
// =============================================================================

func TestPolicies(t *testing.T) {
	if CrawlPolicy.Timeout != 10*time.Second || !CrawlPolicy.FollowRedirects {
		t.Errorf("CrawlPolicy = %+v, want 10s following redirects", CrawlPolicy)
	}
	if ProbePolicy.Timeout != 5*time.Second || ProbePolicy.FollowRedirects {
		t.Errorf("ProbePolicy = %+v, want 5s without redirects", ProbePolicy)
	}
}

func TestNewClient_DefaultUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	if _, err := NewClient(Config{}).Get(context.Background(), server.URL, CrawlPolicy); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want default", gotUA)
	}
}

// =============================================================================
// Get Tests
// =============================================================================

func TestClient_Get_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer server.Close()

	c := NewClient(Config{UserAgent: "AuditBot/2.0"})
	resp, err := c.Get(context.Background(), server.URL, CrawlPolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if gotUA != "AuditBot/2.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q", gotAccept)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "<title>ok</title>") {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.URL != server.URL {
		t.Errorf("URL = %q, want %q", resp.URL, server.URL)
	}
}

func redirectServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<title>Login</title>"))
	})
	return httptest.NewServer(mux)
}

func TestClient_Get_FollowsRedirectsForCrawl(t *testing.T) {
	server := redirectServer()
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL+"/admin", CrawlPolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "<title>Login</title>") {
		t.Errorf("Body = %q, want the redirect target", resp.Body)
	}
	if resp.URL != server.URL+"/admin" {
		t.Errorf("URL should stay the requested URL, got %q", resp.URL)
	}
}

func TestClient_Get_DoesNotFollowRedirectsForProbe(t *testing.T) {
	server := redirectServer()
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL+"/admin", ProbePolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("StatusCode = %d, want 302", resp.StatusCode)
	}
	if strings.Contains(resp.Body, "Login") {
		t.Error("probe should not read the redirect target")
	}
}

func TestClient_Get_KeepsCookiesAcrossRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("sid"); err != nil {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		w.Write([]byte("<title>Welcome</title>"))
	}))
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL+"/", CrawlPolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != 200 || !strings.Contains(resp.Body, "Welcome") {
		t.Errorf("StatusCode = %d, Body = %q, want the page behind the cookie check", resp.StatusCode, resp.Body)
	}
}

func TestClient_Get_KeepsCookiesAcrossRequests(t *testing.T) {
	var gotSID string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
	})
	mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sid"); err == nil {
			gotSID = c.Value
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := NewClient(DefaultConfig())
	if _, err := c.Get(context.Background(), server.URL+"/", CrawlPolicy); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := c.Get(context.Background(), server.URL+"/admin", ProbePolicy); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotSID != "abc" {
		t.Errorf("sid under ProbePolicy = %q, want the cookie set while crawling", gotSID)
	}
}

func TestClient_Get_TooManyRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	_, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL+"/", CrawlPolicy)
	if err == nil {
		t.Fatal("Get() should fail on a redirect loop")
	}
}

func TestClient_Get_ErrorStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL, ProbePolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestClient_Get_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(DefaultConfig()).Get(context.Background(), addr, CrawlPolicy)
	if err == nil {
		t.Fatal("Get() should fail against a closed server")
	}
	if errors.GetErrorType(err) != errors.Network {
		t.Errorf("error type = %v, want network", errors.GetErrorType(err))
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL, Policy{Timeout: 50 * time.Millisecond})
	if err == nil {
		t.Fatal("Get() should time out")
	}
	if errors.GetErrorType(err) != errors.Timeout {
		t.Errorf("error type = %v, want timeout", errors.GetErrorType(err))
	}
}

func TestClient_Get_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(DefaultConfig()).Get(ctx, server.URL, CrawlPolicy)
	if errors.GetErrorType(err) != errors.Cancelled {
		t.Errorf("error type = %v, want cancelled", errors.GetErrorType(err))
	}
}

func TestClient_Get_InvalidURL(t *testing.T) {
	_, err := NewClient(DefaultConfig()).Get(context.Background(), "http://[::1]:namedport", CrawlPolicy)
	if errors.GetErrorType(err) != errors.Parse {
		t.Errorf("error type = %v, want parse", errors.GetErrorType(err))
	}
}

// =============================================================================
// Decoding Tests
// =============================================================================

func TestClient_Get_DecodesDeclaredCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" in Latin-1
		w.Write([]byte{'<', 't', 'i', 't', 'l', 'e', '>', 'c', 'a', 'f', 0xe9, '<', '/', 't', 'i', 't', 'l', 'e', '>'})
	}))
	defer server.Close()

	resp, err := NewClient(DefaultConfig()).Get(context.Background(), server.URL, CrawlPolicy)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !strings.Contains(resp.Body, "café") {
		t.Errorf("Body = %q, want UTF-8 decoded title", resp.Body)
	}
}
