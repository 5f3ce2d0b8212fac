// Package hint turns free-text steering instructions into a structured
// directive consumed by the classification pipeline.
//
// Parsing is pure substring and regex matching over a lower-cased copy of
// the input. Precedence within each scan is list order, not position in the
// hint string; the scans themselves are independent of each other.
package hint

import (
	"regexp"
	"strconv"
	"strings"
)

// Directive is the parsed form of a free-text hint. All fields are optional;
// a field left at its zero value means the hint said nothing about it.
// A Directive is built once per request and never mutated afterwards.
type Directive struct {
	PreferredType   string   `json:"preferredType,omitempty"`
	Profile         string   `json:"profile,omitempty"`
	Strictness      string   `json:"strictness,omitempty"`
	RenderMode      string   `json:"renderMode,omitempty"`
	Language        string   `json:"language,omitempty"`
	MaxItems        int      `json:"maxItems,omitempty"`
	Enrich          []string `json:"enrich,omitempty"`
	Suppress        []string `json:"suppress,omitempty"`
	PrioritySignals []string `json:"prioritySignals,omitempty"`
}

// Types recognized as preferred-type keywords, in scan order. The first
// member whose lower-cased name appears as a substring of the hint wins,
// so "Product blog article" and "article Product" both resolve to Product.
var Types = []string{
	"Product",
	"BlogPosting",
	"Article",
	"ItemList",
	"LocalBusiness",
	"Event",
	"Recipe",
	"Course",
	"HowTo",
	"SoftwareApplication",
	"WebPage",
}

// Profiles is the domain-vocabulary enum, in scan order.
var Profiles = []string{"blog", "store", "local", "recipe", "events", "saas", "auto"}

// Strictnesses is the strictness enum, in scan order.
var Strictnesses = []string{"lenient", "normal", "strict"}

// RenderModes is the render-mode enum, in scan order.
var RenderModes = []string{"auto", "html", "headless"}

// Features is the feature vocabulary usable in enrich/suppress phrases.
var Features = []string{
	"offers",
	"aggregateRating",
	"reviews",
	"breadcrumbs",
	"faq",
	"video",
	"sameAs",
	"brand",
	"authorSameAs",
	"about",
	"mentions",
	"howtoSteps",
}

// Signals is the priority-signal vocabulary, in append order.
var Signals = []string{"byline", "price", "rating", "sku", "map", "steps", "dates"}

var (
	langSimpleRe = regexp.MustCompile(`\b([a-z]{2})\b`)
	langBCP47Re  = regexp.MustCompile(`\b([a-z]{2}-[A-Z]{2})\b`)
	maxItemsRe   = regexp.MustCompile(`(?:cap\s+(\d+)|max\s+(\d+)|limit\s+(\d+))`)
)

// iso639 holds the two-letter codes accepted by the standalone language scan.
// The scan is a deliberately weak heuristic: ordinary English words that
// happen to be ISO 639-1 codes ("no", "it", "is") will match.
var iso639 = map[string]bool{
	"aa": true, "ab": true, "af": true, "am": true, "ar": true, "az": true,
	"be": true, "bg": true, "bn": true, "bs": true, "ca": true, "cs": true,
	"cy": true, "da": true, "de": true, "el": true, "en": true, "eo": true,
	"es": true, "et": true, "eu": true, "fa": true, "fi": true, "fr": true,
	"ga": true, "gl": true, "gu": true, "he": true, "hi": true, "hr": true,
	"hu": true, "hy": true, "id": true, "is": true, "it": true, "ja": true,
	"ka": true, "kk": true, "km": true, "kn": true, "ko": true, "ku": true,
	"ky": true, "la": true, "lt": true, "lv": true, "mk": true, "ml": true,
	"mn": true, "mr": true, "ms": true, "mt": true, "my": true, "ne": true,
	"nl": true, "no": true, "pa": true, "pl": true, "ps": true, "pt": true,
	"ro": true, "ru": true, "sk": true, "sl": true, "sq": true, "sr": true,
	"sv": true, "sw": true, "ta": true, "te": true, "th": true, "tl": true,
	"tr": true, "uk": true, "ur": true, "uz": true, "vi": true, "zh": true,
}

// Parse converts a free-text hint into a Directive. Blank input yields the
// zero Directive; nothing in this function can fail.
func Parse(hintText string) Directive {
	var d Directive
	text := strings.ToLower(strings.TrimSpace(hintText))
	if text == "" {
		return d
	}

	for _, t := range Types {
		if strings.Contains(text, strings.ToLower(t)) {
			d.PreferredType = t
			break
		}
	}

	for _, p := range Profiles {
		if strings.Contains(text, p) {
			d.Profile = p
			break
		}
	}

	for _, s := range Strictnesses {
		if strings.Contains(text, s) {
			d.Strictness = s
			break
		}
	}

	for _, m := range RenderModes {
		if strings.Contains(text, m) {
			d.RenderMode = m
			break
		}
	}

	if m := langSimpleRe.FindAllStringSubmatch(text, -1); m != nil {
		for _, g := range m {
			if iso639[g[1]] {
				d.Language = g[1]
				break
			}
		}
	}
	// The BCP-47 scan runs second on the original text so a full tag wins
	// over a bare two-letter code.
	if m := langBCP47Re.FindStringSubmatch(hintText); m != nil {
		d.Language = m[1]
	}

	if m := maxItemsRe.FindStringSubmatch(text); m != nil {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			if n, err := strconv.Atoi(g); err == nil && n > 0 {
				d.MaxItems = n
			}
			break
		}
	}

	for _, f := range Features {
		lf := strings.ToLower(f)
		if strings.Contains(text, "include "+lf) ||
			strings.Contains(text, "add "+lf) ||
			strings.Contains(text, "enrich "+lf) {
			d.Enrich = append(d.Enrich, f)
		}
		// A feature can land in both lists; the policy engine's merge
		// decides the winner, not the parser.
		if strings.Contains(text, "ignore "+lf) ||
			strings.Contains(text, "suppress "+lf) ||
			strings.Contains(text, "no "+lf) {
			d.Suppress = append(d.Suppress, f)
		}
	}

	for _, s := range Signals {
		if strings.Contains(text, s) {
			d.PrioritySignals = append(d.PrioritySignals, s)
		}
	}

	return d
}

// HasEnrich reports whether the directive asks for the named feature.
func (d Directive) HasEnrich(feature string) bool {
	return contains(d.Enrich, feature)
}

// HasSuppress reports whether the directive suppresses the named feature.
func (d Directive) HasSuppress(feature string) bool {
	return contains(d.Suppress, feature)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
