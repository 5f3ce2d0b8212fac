// Package fetcher retrieves raw page HTML for normalization. It is the
// pipeline's only I/O collaborator: everything downstream of it is pure.
//
// Implement the Fetcher interface to supply pages from a cache, a fixture
// set, or a fetching strategy with specific anti-bot requirements.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Mode selects the rendering strategy for a fetch.
type Mode string

const (
	// ModeAuto fetches statically and falls back to headless rendering
	// when the page looks like a JavaScript application shell.
	ModeAuto Mode = "auto"
	// ModeHTML fetches the raw HTML without rendering.
	ModeHTML Mode = "html"
	// ModeHeadless renders the page in a headless browser.
	ModeHeadless Mode = "headless"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type.
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content is a raw fetched page, before normalization.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// ErrEmptyBody indicates the fetch succeeded but returned no usable HTML.
var ErrEmptyBody = errors.New("fetch returned an empty body")

// Config holds shared fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Chrome user agent for better compatibility with bot-protected sites.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// New creates a fetcher for the given render mode.
func New(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeHTML:
		return NewStatic(cfg), nil
	case ModeHeadless:
		return NewHeadless(cfg)
	case ModeAuto, "":
		return NewAuto(cfg)
	default:
		return nil, fmt.Errorf("unknown render mode: %s (use auto, html, or headless)", mode)
	}
}
