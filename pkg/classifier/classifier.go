// Package classifier maps normalized page content to a schema.org type.
//
// Classification is a fixed first-match-wins cascade over the DOM signal
// bag. It is deterministic and total: a page matching nothing falls back to
// WebPage at low confidence rather than erroring.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schemaforge/schemaforge/pkg/content"
	"github.com/schemaforge/schemaforge/pkg/hint"
)

// Classification is the classifier's verdict. Signals accumulate in
// detection order and exist purely for audit; their order carries no weight.
type Classification struct {
	PrimaryType string   `json:"primaryType"`
	Subtype     string   `json:"subtype,omitempty"`
	Confidence  float64  `json:"confidence"`
	Features    []string `json:"features"`
	Signals     []string `json:"signals"`
}

var listKeywordRe = regexp.MustCompile(`(?i)\b(?:top|best)\s+\d+\b`)

// Classify inspects the signal bag and the hint directive and picks a
// primary type, optional subtype, features, and a confidence score.
func Classify(c content.Normalized, h hint.Directive) Classification {
	var cls Classification
	text := strings.ToLower(c.Text)
	sig := c.Signals

	switch {
	case h.PreferredType != "":
		cls.PrimaryType = h.PreferredType
		cls.Confidence = 0.7
		cls.Signals = append(cls.Signals, fmt.Sprintf("hint requested type %s, overriding detection", h.PreferredType))

	case sig.HasPrice && sig.HasCurrency && (sig.HasAddToCart || sig.HasSKU):
		cls.PrimaryType = "Product"
		cls.Confidence = 0.9
		cls.Signals = append(cls.Signals, "price and currency with purchase affordance detected")

	case sig.HasNAP && (sig.HasHours || sig.HasMap):
		cls.PrimaryType = "LocalBusiness"
		cls.Confidence = 0.85
		cls.Signals = append(cls.Signals, "name/address/phone with hours or map detected")

	case sig.HasEventMarkers && containsAny(text, "ticket", "venue"):
		cls.PrimaryType = "Event"
		cls.Confidence = 0.8
		cls.Signals = append(cls.Signals, "event markers with ticket or venue mention detected")

	case sig.HasRecipeMarker && containsAny(text, "ingredient", "minutes", "prep time"):
		cls.PrimaryType = "Recipe"
		cls.Confidence = 0.85
		cls.Signals = append(cls.Signals, "recipe markers with ingredient or timing mention detected")

	case sig.HasStepMarkers && containsAny(text, "how to", "tutorial", "guide"):
		cls.PrimaryType = "HowTo"
		cls.Confidence = 0.8
		cls.Signals = append(cls.Signals, "step markers with how-to phrasing detected")

	case sig.HasByline && sig.HasPublishDate:
		cls.PrimaryType = "Article"
		if containsAny(strings.ToLower(c.URL), "blog", "post") || containsAny(text, "blog", "post") {
			cls.PrimaryType = "BlogPosting"
		}
		cls.Confidence = 0.8
		cls.Signals = append(cls.Signals, "byline and publish date detected")

	case sig.HasNumberedList && listKeywordRe.MatchString(c.Text):
		cls.PrimaryType = "ItemList"
		cls.Confidence = 0.75
		cls.Signals = append(cls.Signals, "numbered list with ranking keyword detected")

	default:
		cls.PrimaryType = "WebPage"
		cls.Confidence = 0.5
		cls.Signals = append(cls.Signals, "no strong type signal, defaulting to WebPage")
	}

	if sub := detectSubtype(cls.PrimaryType, text, sig); sub != "" {
		cls.Subtype = sub
		cls.Signals = append(cls.Signals, fmt.Sprintf("subtype %s inferred from page keywords", sub))
	}

	// Pre-existing structured data corroborates whatever branch fired; it
	// never overrides the detected type.
	for _, m := range c.Existing {
		if m.Type != "" {
			if cls.Confidence < 0.8 {
				cls.Confidence = 0.8
			}
			cls.Signals = append(cls.Signals, fmt.Sprintf("existing %s markup with type %s corroborates classification", m.Format, m.Type))
			break
		}
	}

	cls.Features, cls.Signals = detectFeatures(sig, cls.Signals)
	return cls
}

// subtypeGroups maps keyword groups to subtypes, checked in order; the
// first group with a matching keyword wins and at most one subtype is set.
var localBusinessSubtypes = []struct {
	subtype  string
	keywords []string
}{
	{"Restaurant", []string{"restaurant", "menu", "dining"}},
	{"Dentist", []string{"dentist", "dental"}},
	{"MedicalOrganization", []string{"clinic", "medical", "doctor"}},
	{"LodgingBusiness", []string{"hotel", "lodging", "inn", "resort"}},
	{"Store", []string{"store", "shop"}},
	{"ExerciseGym", []string{"gym", "fitness"}},
	{"BeautySalon", []string{"salon", "spa", "beauty"}},
}

var articleSubtypes = []struct {
	subtype     string
	keywords    []string
	needsRating bool
}{
	{"NewsArticle", []string{"news", "breaking"}, false},
	{"TechArticle", []string{"programming", "software", "engineering", "code"}, false},
	{"Review", []string{"review", "verdict"}, true},
}

func detectSubtype(primaryType, text string, sig content.Signals) string {
	switch primaryType {
	case "LocalBusiness":
		for _, g := range localBusinessSubtypes {
			if containsAny(text, g.keywords...) {
				return g.subtype
			}
		}
	case "Article", "BlogPosting":
		for _, g := range articleSubtypes {
			if g.needsRating && !sig.HasRating {
				continue
			}
			if containsAny(text, g.keywords...) {
				return g.subtype
			}
		}
	}
	return ""
}

// detectFeatures always runs in full, independent of which primary-type
// branch fired. Each mapping is a direct signal-to-feature projection.
func detectFeatures(sig content.Signals, signals []string) ([]string, []string) {
	features := []string{}
	add := func(feature, reason string) {
		features = append(features, feature)
		signals = append(signals, reason)
	}

	if sig.HasPrice && sig.HasCurrency {
		add("offers", "offer pricing detected")
	}
	if sig.HasRating {
		add("aggregateRating", "rating signal detected")
	}
	if sig.HasReviews {
		add("reviews", "review mentions detected")
	}
	if sig.HasBreadcrumbs {
		add("breadcrumbs", "breadcrumb trail detected")
	}
	if sig.HasFAQ {
		add("faq", "FAQ section detected")
	}
	if sig.HasVideo {
		add("video", "embedded video detected")
	}
	return features, signals
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
