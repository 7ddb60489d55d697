// Package shortener shortens links through an HTTP shortening service and
// caches the results.
package shortener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"repo-relay/pkg/log"
)

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 24 * time.Hour
	defaultTimeout   = 3 * time.Second
)

type Options struct {
	URL       string // service endpoint; empty disables shortening
	CacheSize int
	CacheTTL  time.Duration
	Timeout   time.Duration
}

// Client shortens URLs. It never fails: on any error the long URL is
// returned so a message can still carry a working link.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cache      *expirable.LRU[string, string]
	l          log.Logger
}

func New(opt Options, l log.Logger) *Client {
	if opt.CacheSize <= 0 {
		opt.CacheSize = defaultCacheSize
	}
	if opt.CacheTTL <= 0 {
		opt.CacheTTL = defaultCacheTTL
	}
	if opt.Timeout <= 0 {
		opt.Timeout = defaultTimeout
	}
	return &Client{
		endpoint:   opt.URL,
		httpClient: &http.Client{Timeout: opt.Timeout},
		cache:      expirable.NewLRU[string, string](opt.CacheSize, nil, opt.CacheTTL),
		l:          l,
	}
}

// Shorten returns the short form of longURL, or longURL itself.
func (c *Client) Shorten(ctx context.Context, longURL string) string {
	if c.endpoint == "" || longURL == "" {
		return longURL
	}
	if short, ok := c.cache.Get(longURL); ok {
		return short
	}

	short, err := c.request(ctx, longURL)
	if err != nil {
		c.l.Warnf(ctx, "shortener.Shorten: %v", err)
		return longURL
	}
	c.cache.Add(longURL, short)
	return short
}

// request posts url=<longURL> as a form. The short link is taken from the
// Location header when present, otherwise from the response body.
func (c *Client) request(ctx context.Context, longURL string) (string, error) {
	form := url.Values{"url": {longURL}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); loc != "" {
		return loc, nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	short := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(short, "http://") && !strings.HasPrefix(short, "https://") {
		return "", fmt.Errorf("response is not a URL: %q", short)
	}
	return short, nil
}
