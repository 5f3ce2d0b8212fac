// Package schemaforge is the public entry point: given a URL and an
// optional free-text hint, it fetches and normalizes the page, classifies
// it, applies policy, assembles a JSON-LD document, and lints the result.
//
// The pipeline stages themselves are pure; all I/O lives in the fetcher.
// A Forge is safe for concurrent use and every request is independent: no
// state is shared or retained between calls.
package schemaforge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/schemaforge/schemaforge/internal/logger"
	"github.com/schemaforge/schemaforge/pkg/assembler"
	"github.com/schemaforge/schemaforge/pkg/classifier"
	"github.com/schemaforge/schemaforge/pkg/content"
	"github.com/schemaforge/schemaforge/pkg/fetcher"
	"github.com/schemaforge/schemaforge/pkg/hint"
	"github.com/schemaforge/schemaforge/pkg/lint"
	"github.com/schemaforge/schemaforge/pkg/policy"
)

// Request is the outer boundary input. Validation happens here, before the
// pipeline runs; the core assumes a fetchable URL produced its content.
type Request struct {
	URL        string `json:"url" validate:"required,url"`
	Hint       string `json:"hint,omitempty"`
	RenderMode string `json:"renderMode,omitempty" validate:"omitempty,oneof=auto html headless"`
}

// Result is the response shape at the pipeline's outer boundary.
type Result struct {
	URL           string         `json:"url"`
	DetectedType  string         `json:"detectedType"`
	Subtype       string         `json:"subtype,omitempty"`
	Features      []string       `json:"features"`
	Confidence    float64        `json:"confidence"`
	JSONLD        map[string]any `json:"jsonld"`
	Explanations  []string       `json:"explanations"`
	Warnings      []string       `json:"warnings"`
	HintDirective hint.Directive `json:"hintDirective"`
	Lint          lint.Report    `json:"lint"`
	FetchedAt     time.Time      `json:"fetchedAt,omitempty"`
	FetchDuration time.Duration  `json:"-"`
	Error         error          `json:"-"`
}

// Forge runs the generation pipeline.
type Forge struct {
	fetcher    fetcher.Fetcher
	normalizer *content.Normalizer
	assembler  *assembler.Assembler
	validate   *validator.Validate
	config     Config
}

// New creates a Forge.
func New(opts ...Option) (*Forge, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := cfg.Fetcher
	if f == nil {
		var err error
		f, err = fetcher.New(cfg.RenderMode, fetcher.Config{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fetcher: %w", err)
		}
	}

	asmOpts := []assembler.Option{}
	if cfg.Clock != nil {
		asmOpts = append(asmOpts, assembler.WithClock(cfg.Clock))
	}

	return &Forge{
		fetcher:    f,
		normalizer: content.NewNormalizer(),
		assembler:  assembler.New(asmOpts...),
		validate:   validator.New(),
		config:     cfg,
	}, nil
}

// Generate fetches a URL and runs the full pipeline on it.
func (f *Forge) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := f.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	fetch := f.fetcher
	if req.RenderMode != "" && fetcher.Mode(req.RenderMode) != f.config.RenderMode && f.config.Fetcher == nil {
		var err error
		fetch, err = fetcher.New(fetcher.Mode(req.RenderMode), fetcher.Config{
			UserAgent: f.config.UserAgent,
			Timeout:   f.config.Timeout,
		})
		if err != nil {
			return nil, err
		}
		defer fetch.Close()
	}

	fetchStart := time.Now()
	page, err := fetch.Fetch(ctx, req.URL, fetcher.Options{
		UserAgent: f.config.UserAgent,
		Timeout:   f.config.Timeout,
	})
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	logger.Debug("page fetched",
		"url", req.URL,
		"fetcher", fetch.Type(),
		"status", page.StatusCode,
		"duration", fetchDuration)

	normalized := f.normalizer.Normalize(req.URL, page.HTML)
	result := f.Run(normalized, req.Hint)
	result.FetchedAt = page.FetchedAt
	result.FetchDuration = fetchDuration
	return result, nil
}

// Run executes the pure five-stage pipeline on already-normalized content.
// It performs no I/O and cannot fail: sparse content degrades to defaults
// and placeholders, never to an error.
func (f *Forge) Run(c content.Normalized, hintText string) *Result {
	directive := hint.Parse(hintText)
	cls := classifier.Classify(c, directive)
	pol := policy.Apply(cls, c, directive)
	doc := f.assembler.Assemble(pol, c)

	jsonldMap, err := doc.AsMap()
	if err != nil {
		// Marshaling typed nodes cannot realistically fail; guard anyway.
		jsonldMap = map[string]any{}
	}
	report := lint.Validate(jsonldMap)

	warnings := append([]string{}, pol.Warnings...)
	warnings = append(warnings, report.Warnings...)

	logger.Debug("pipeline complete",
		"url", c.URL,
		"type", pol.PrimaryType,
		"subtype", pol.Subtype,
		"confidence", pol.Confidence,
		"schema_valid", report.SchemaOrgValid,
		"rich_results", report.RichResultsEligible)

	return &Result{
		URL:           c.URL,
		DetectedType:  pol.PrimaryType,
		Subtype:       pol.Subtype,
		Features:      pol.Features,
		Confidence:    pol.Confidence,
		JSONLD:        jsonldMap,
		Explanations:  pol.Explanations,
		Warnings:      warnings,
		HintDirective: directive,
		Lint:          report,
	}
}

// GenerateMany processes multiple URLs concurrently with a bounded number
// of in-flight requests. Each request is fully independent.
func (f *Forge) GenerateMany(ctx context.Context, reqs []Request, concurrency int) <-chan *Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make(chan *Result, len(reqs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, req := range reqs {
		wg.Add(1)
		go func(r Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := f.Generate(ctx, r)
			if err != nil {
				results <- &Result{URL: r.URL, Error: err}
				return
			}
			results <- result
		}(req)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Close releases fetcher resources.
func (f *Forge) Close() error {
	if f.fetcher != nil {
		return f.fetcher.Close()
	}
	return nil
}
