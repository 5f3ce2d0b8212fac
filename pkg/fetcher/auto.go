package fetcher

import (
	"context"
	"strings"

	"github.com/schemaforge/schemaforge/internal/logger"
)

// Auto tries a static fetch first and falls back to headless rendering
// when the result looks like an unrendered JavaScript application shell.
type Auto struct {
	static   *Static
	headless *Headless
}

// NewAuto creates an auto-detecting fetcher.
func NewAuto(cfg Config) (*Auto, error) {
	headless, err := NewHeadless(cfg)
	if err != nil {
		return nil, err
	}
	return &Auto{
		static:   NewStatic(cfg),
		headless: headless,
	}, nil
}

// Fetch tries static first, then headless if the page needs JavaScript.
func (f *Auto) Fetch(ctx context.Context, url string, opts Options) (Content, error) {
	content, err := f.static.Fetch(ctx, url, opts)
	if err != nil {
		logger.Debug("static fetch failed, retrying headless", "url", url, "error", err)
		return f.headless.Fetch(ctx, url, opts)
	}
	if NeedsJavaScript(content.HTML) {
		logger.Debug("page looks like an app shell, retrying headless", "url", url)
		return f.headless.Fetch(ctx, url, opts)
	}
	return content, nil
}

// spaMarkers are framework mount points that indicate a client-rendered page.
var spaMarkers = []string{
	`<div id="root"></div>`,     // React
	`<div id="app"></div>`,      // Vue
	`<app-root></app-root>`,     // Angular
	`<div id="__next"></div>`,   // Next.js
	`<div id="__nuxt"></div>`,   // Nuxt.js
	`<div data-reactroot`,       // React
	"ng-app",                    // Angular
	"v-cloak",                   // Vue
}

// NeedsJavaScript reports whether raw HTML appears to require rendering.
func NeedsJavaScript(html string) bool {
	lower := strings.ToLower(html)
	for _, marker := range spaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	if strings.Contains(lower, "<noscript>") {
		noscript := extractBetween(lower, "<noscript>", "</noscript>")
		for _, indicator := range []string{"javascript", "enable", "required"} {
			if strings.Contains(noscript, indicator) {
				return true
			}
		}
	}
	return false
}

func extractBetween(s, start, end string) string {
	startIdx := strings.Index(s, start)
	if startIdx == -1 {
		return ""
	}
	startIdx += len(start)
	endIdx := strings.Index(s[startIdx:], end)
	if endIdx == -1 {
		return ""
	}
	return s[startIdx : startIdx+endIdx]
}

// Close releases the headless browser.
func (f *Auto) Close() error {
	if f.headless != nil {
		return f.headless.Close()
	}
	return nil
}

// Type returns the fetcher type.
func (f *Auto) Type() string {
	return "auto"
}
