// Package policy applies quality gates, hint-driven feature shaping,
// strictness filtering, and type-conflict resolution to a classification.
//
// Each step feeds the next in a fixed order; the ordering is part of the
// observable contract (notably suppress-then-enrich, where enrich wins on
// overlap) and must not be rearranged.
package policy

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/pkg/classifier"
	"github.com/schemaforge/schemaforge/pkg/content"
	"github.com/schemaforge/schemaforge/pkg/hint"
)

// Result is the policy engine's output. Confidence is never higher than the
// classifier's own score; mentions list types demoted out of the primary
// slot by conflict resolution.
type Result struct {
	PrimaryType  string   `json:"primaryType"`
	Subtype      string   `json:"subtype,omitempty"`
	Features     []string `json:"features"`
	Confidence   float64  `json:"confidence"`
	Explanations []string `json:"explanations"`
	Warnings     []string `json:"warnings"`
	Mentions     []string `json:"mentions,omitempty"`
}

// Apply runs the policy sequence over a classification.
func Apply(cls classifier.Classification, c content.Normalized, h hint.Directive) Result {
	r := Result{
		PrimaryType: cls.PrimaryType,
		Subtype:     cls.Subtype,
		Features:    append([]string{}, cls.Features...),
		Confidence:  cls.Confidence,
	}
	sig := c.Signals

	// Quality gates. A downgrade replaces the primary type with WebPage and
	// caps confidence; article gaps and a missing social image only warn.
	switch r.PrimaryType {
	case "Product":
		if !sig.HasPrice {
			r.downgrade("Product classification without a price signal")
			r.Warnings = append(r.Warnings, "product page has no detectable price")
		}
	case "LocalBusiness":
		if !sig.HasNAP {
			r.downgrade("LocalBusiness classification without name/address/phone")
			r.Warnings = append(r.Warnings, "local business page lacks NAP details")
		}
	case "Article", "BlogPosting":
		if !sig.HasByline {
			r.Warnings = append(r.Warnings, "article has no detectable byline")
		}
		if !sig.HasPublishDate {
			r.Warnings = append(r.Warnings, "article has no detectable publish date")
		}
	}
	if c.OG("image") == "" {
		r.Warnings = append(r.Warnings, "page has no OpenGraph image")
	}

	r.Features = MergeFeatures(r.Features, h.Suppress, h.Enrich)
	for _, f := range h.Suppress {
		r.Explanations = append(r.Explanations, fmt.Sprintf("feature %s suppressed by hint", f))
	}
	for _, f := range h.Enrich {
		r.Explanations = append(r.Explanations, fmt.Sprintf("feature %s enriched by hint", f))
	}

	if h.Strictness == "strict" {
		r.Features = filterStrict(r.Features, sig, &r.Warnings)
	}

	// Conflict resolution: a coarse scan of the signal text, not structured
	// flags. When product-like and article-like evidence coexist, Product is
	// demoted to a mention rather than competing for the primary slot.
	if len(cls.Signals) > 1 {
		joined := strings.ToLower(strings.Join(cls.Signals, " "))
		if strings.Contains(joined, "price") && strings.Contains(joined, "byline") {
			r.Mentions = append(r.Mentions, "Product")
			r.Explanations = append(r.Explanations, "product signals demoted to mention due to article evidence")
		}
	}

	r.Explanations = append(r.Explanations, cls.Signals...)
	return r
}

func (r *Result) downgrade(reason string) {
	r.PrimaryType = "WebPage"
	r.Subtype = ""
	if r.Confidence > 0.6 {
		r.Confidence = 0.6
	}
	r.Explanations = append(r.Explanations, fmt.Sprintf("downgraded to WebPage: %s", reason))
}

// MergeFeatures applies suppression then enrichment to a feature list.
// Precedence rule: enrich runs strictly after suppress, so a feature named
// in both sets survives. Order of surviving features is preserved; enriched
// features append in the order given.
func MergeFeatures(features, suppress, enrich []string) []string {
	merged := make([]string, 0, len(features)+len(enrich))
	for _, f := range features {
		if !containsString(suppress, f) {
			merged = append(merged, f)
		}
	}
	for _, f := range enrich {
		if !containsString(merged, f) {
			merged = append(merged, f)
		}
	}
	return merged
}

// strictChecks re-validates individual features against the signal bag.
// Features absent from this table pass through unchanged.
var strictChecks = map[string]func(content.Signals) bool{
	"offers":          func(s content.Signals) bool { return s.HasPrice && s.HasCurrency },
	"aggregateRating": func(s content.Signals) bool { return s.HasRating },
	"reviews":         func(s content.Signals) bool { return s.HasReviews },
}

func filterStrict(features []string, sig content.Signals, warnings *[]string) []string {
	kept := features[:0]
	for _, f := range features {
		if check, ok := strictChecks[f]; ok && !check(sig) {
			*warnings = append(*warnings, fmt.Sprintf("feature %s dropped under strict mode: supporting signal missing", f))
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
