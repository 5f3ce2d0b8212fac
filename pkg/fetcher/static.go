package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/schemaforge/schemaforge/internal/logger"
)

// Static fetches raw HTML with Colly, without JavaScript rendering.
type Static struct {
	config Config
}

// NewStatic creates a static fetcher.
func NewStatic(cfg Config) *Static {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Static{config: cfg}
}

// Fetch retrieves page content over plain HTTP.
func (f *Static) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.config.UserAgent
	}
	c := colly.NewCollector(colly.UserAgent(userAgent))

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error
	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}
	if result.HTML == "" {
		return result, ErrEmptyBody
	}

	logger.Debug("static fetch complete", "url", targetURL, "html_size", len(result.HTML))
	return result, nil
}

// Close is a no-op; the static fetcher holds no resources.
func (f *Static) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *Static) Type() string {
	return "static"
}
