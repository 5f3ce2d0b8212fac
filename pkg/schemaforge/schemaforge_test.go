package schemaforge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/schemaforge/schemaforge/pkg/content"
	"github.com/schemaforge/schemaforge/pkg/fetcher"
)

// stubFetcher serves a fixed page without touching the network.
type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) Fetch(_ context.Context, url string, _ fetcher.Options) (fetcher.Content, error) {
	if s.err != nil {
		return fetcher.Content{}, s.err
	}
	return fetcher.Content{
		URL:        url,
		HTML:       s.html,
		StatusCode: 200,
		FetchedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubFetcher) Close() error { return nil }
func (s *stubFetcher) Type() string { return "stub" }

func newTestForge(t *testing.T, f fetcher.Fetcher) *Forge {
	t.Helper()
	forge, err := New(
		WithFetcher(f),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return forge
}

func TestGenerate_RejectsInvalidRequest(t *testing.T) {
	forge := newTestForge(t, &stubFetcher{html: "<html></html>"})
	defer forge.Close()

	for _, req := range []Request{
		{},
		{URL: "not a url"},
		{URL: "https://example.com", RenderMode: "turbo"},
	} {
		if _, err := forge.Generate(context.Background(), req); err == nil {
			t.Errorf("Generate(%+v) accepted an invalid request", req)
		}
	}
}

func TestGenerate_FetchFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	forge := newTestForge(t, &stubFetcher{err: wantErr})
	defer forge.Close()

	_, err := forge.Generate(context.Background(), Request{URL: "https://example.com"})
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped fetch error", err)
	}
}

func TestGenerate_ProductPage(t *testing.T) {
	html := `<html><head>
		<title>Acme Widget</title>
		<meta property="og:image" content="https://shop.example.com/widget.png">
		<meta name="description" content="The finest widget.">
	</head><body>
		<main><h1>Acme Widget</h1>
		<p>Only $49.99. Rated 4.8/5 from 120 reviews. SKU: W-100.</p>
		<button>Add to Cart</button></main>
	</body></html>`
	forge := newTestForge(t, &stubFetcher{html: html})
	defer forge.Close()

	result, err := forge.Generate(context.Background(), Request{URL: "https://shop.example.com/widget"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.DetectedType != "Product" {
		t.Errorf("DetectedType = %q, want Product", result.DetectedType)
	}
	if result.Confidence < 0.9 {
		t.Errorf("Confidence = %v, want >= 0.9", result.Confidence)
	}
	if result.JSONLD["@context"] != "https://schema.org" {
		t.Errorf("jsonld @context = %v", result.JSONLD["@context"])
	}
	if result.FetchedAt.IsZero() {
		t.Error("FetchedAt not propagated from the fetcher")
	}
	if !result.Lint.SchemaOrgValid {
		t.Errorf("lint errors: %v", result.Lint.Errors)
	}
}

func TestRun_HintShapesOutput(t *testing.T) {
	forge := newTestForge(t, &stubFetcher{})
	defer forge.Close()

	c := content.Normalized{
		URL:   "https://shop.example.com/widget",
		Title: "Acme Widget",
		Text:  "Only $49.99 in stock. SKU: W-100. Add to cart now.",
		Signals: content.Signals{
			HasPrice:    true,
			HasCurrency: true,
			HasSKU:      true,
		},
	}

	result := forge.Run(c, "no offers, cap 3")
	for _, f := range result.Features {
		if f == "offers" {
			t.Error("offers survived a suppress hint")
		}
	}
	if result.HintDirective.MaxItems != 3 {
		t.Errorf("MaxItems = %d, want 3", result.HintDirective.MaxItems)
	}
	if !anyContains(result.Explanations, "offers suppressed") {
		t.Errorf("explanations = %v", result.Explanations)
	}
}

func TestRun_RestaurantScenario(t *testing.T) {
	forge := newTestForge(t, &stubFetcher{})
	defer forge.Close()

	c := content.Normalized{
		URL:   "https://bistro.example.com",
		Title: "Chez Bistro",
		Text: "Chez Bistro is the best restaurant in town for dinner.\n" +
			"Find us at 12 Oak Street. Call (555) 123-4567.\n" +
			"Open daily 11am to 10pm.",
		Signals: content.Signals{
			HasNAP:   true,
			HasHours: true,
			HasMap:   true,
		},
	}

	result := forge.Run(c, "")
	if result.DetectedType != "LocalBusiness" {
		t.Errorf("DetectedType = %q, want LocalBusiness", result.DetectedType)
	}
	if result.Subtype != "Restaurant" {
		t.Errorf("Subtype = %q, want Restaurant", result.Subtype)
	}
	if !result.Lint.SchemaOrgValid {
		t.Errorf("lint errors: %v", result.Lint.Errors)
	}
}

func TestRun_SparseContentDegradesToWebPage(t *testing.T) {
	forge := newTestForge(t, &stubFetcher{})
	defer forge.Close()

	result := forge.Run(content.Normalized{URL: "https://example.com", Title: "Hello"}, "")
	if result.DetectedType != "WebPage" {
		t.Errorf("DetectedType = %q, want WebPage", result.DetectedType)
	}
	if result.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", result.Confidence)
	}
	if !result.Lint.SchemaOrgValid {
		t.Errorf("sparse content must still yield a valid document: %v", result.Lint.Errors)
	}
}

func TestRun_WarningsCombinePolicyAndLint(t *testing.T) {
	forge := newTestForge(t, &stubFetcher{})
	defer forge.Close()

	c := content.Normalized{
		URL:   "https://blog.example.com/post/one",
		Title: "A Post",
		Text:  "Some thoughts for today.",
	}
	result := forge.Run(c, "article")
	if !anyContains(result.Warnings, "byline") {
		t.Errorf("expected the policy byline warning, got %v", result.Warnings)
	}
	if !anyContains(result.Warnings, "recommended field") {
		t.Errorf("expected lint recommendations, got %v", result.Warnings)
	}
}

func TestGenerateMany(t *testing.T) {
	html := `<html><head><title>Page</title></head><body><p>hello world</p></body></html>`
	forge := newTestForge(t, &stubFetcher{html: html})
	defer forge.Close()

	reqs := []Request{
		{URL: "https://example.com/a"},
		{URL: "https://example.com/b"},
		{URL: "bad url"},
	}
	var ok, failed int
	for result := range forge.GenerateMany(context.Background(), reqs, 2) {
		if result.Error != nil {
			failed++
			continue
		}
		ok++
	}
	if ok != 2 || failed != 1 {
		t.Errorf("ok = %d, failed = %d, want 2/1", ok, failed)
	}
}

func anyContains(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
