package assembler

import (
	"fmt"
	"regexp"
	"strings"
)

// The extractors below are best-effort text mining over unstructured page
// text. Each is a narrow function returning an ok flag so callers (and
// tests) can exercise the documented fallback path independently of the
// end-to-end document.

var (
	priceRe      = regexp.MustCompile(`([$€£¥])\s?(\d+(?:[.,]\d{1,2})?)`)
	ratingRe     = regexp.MustCompile(`(\d(?:\.\d)?)\s*(?:/|out of)\s*5`)
	countRe      = regexp.MustCompile(`(\d+)\s+(?:reviews?|ratings?)`)
	authorRe     = regexp.MustCompile(`\b(?:[Ww]ritten by|[Bb]y|[Aa]uthor:?)\s+([A-Z][a-zA-Z]+(?:\s[A-Z][a-zA-Z]+)?)`)
	dateRe       = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	addressRe    = regexp.MustCompile(`(?im)^.*\b\d+\s+[A-Za-z]+\s+(?:St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Way)\b.*$`)
	phoneRe      = regexp.MustCompile(`\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}`)
	breadcrumbRe = regexp.MustCompile(`(?i)Home\s*[>›»]\s*([^>›»\n]+?)(?:\s*[>›»]\s*([^>›»\n]+?))?\s*(?:$|\n)`)
	numberedRe   = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)
	stepPrefixRe = regexp.MustCompile(`(?im)^\s*(?:step\s+\d+[:.]?|\d+\.)\s+(.+)$`)
	ingredientRe = regexp.MustCompile(`(?im)^\s*\d+(?:[./]\d+)?\s?(?:cups?|tbsp|tablespoons?|tsp|teaspoons?|g|kg|ml|l|oz|ounces?|lbs?|pounds?|cloves?|slices?)\b.*$`)
	cookTimeRe   = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|minutes?|mins?)`)
)

var currencyCodes = map[string]string{"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY"}

// extractPrice finds the first currency-symbol-plus-number sequence.
// Fallback: callers emit an offer without price fields.
func extractPrice(text string) (price, currency string, ok bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.ReplaceAll(m[2], ",", "."), currencyCodes[m[1]], true
}

// extractRating finds an "N / 5" style rating and an optional review count.
// Fallback: no aggregateRating node is attached.
func extractRating(text string) (value, count string, ok bool) {
	m := ratingRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	value = m[1]
	if cm := countRe.FindStringSubmatch(text); cm != nil {
		count = cm[1]
	}
	return value, count, true
}

// extractAuthor finds a capitalized name after a byline marker.
// Fallback: the author field is omitted.
func extractAuthor(text string) (string, bool) {
	m := authorRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// extractDate finds the first ISO-style YYYY-MM-DD date.
// Fallback: the date field is omitted (Event substitutes today instead).
func extractDate(text string) (string, bool) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractAddress finds a street-address-like line. Fallback: omitted.
func extractAddress(text string) (string, bool) {
	m := addressRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// extractPhone finds a US-style phone number. Fallback: omitted.
func extractPhone(text string) (string, bool) {
	m := phoneRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}

// extractBreadcrumb matches a "Home > X > Y" trail, capturing up to two
// trailing segments. Fallback: no breadcrumb node even when the feature
// flag was set.
func extractBreadcrumb(text string) ([]string, bool) {
	m := breadcrumbRe.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	segments := []string{"Home"}
	for _, g := range m[1:] {
		g = strings.TrimSpace(g)
		if g != "" {
			segments = append(segments, g)
		}
	}
	if len(segments) == 1 {
		return nil, false
	}
	return segments, true
}

// extractNumberedLines collects "N. item" lines up to max entries.
// Fallback: callers substitute a single placeholder item.
func extractNumberedLines(text string, max int) []string {
	var items []string
	for _, m := range numberedRe.FindAllStringSubmatch(text, -1) {
		items = append(items, strings.TrimSpace(m[1]))
		if len(items) == max {
			break
		}
	}
	return items
}

// extractSteps collects "Step N" or "N." prefixed lines.
// Fallback: callers substitute a single placeholder step.
func extractSteps(text string) []string {
	var steps []string
	for _, m := range stepPrefixRe.FindAllStringSubmatch(text, -1) {
		steps = append(steps, strings.TrimSpace(m[1]))
	}
	return steps
}

// extractIngredients collects leading-number-plus-unit lines.
// Fallback: callers substitute two placeholder ingredients.
func extractIngredients(text string) []string {
	var out []string
	for _, m := range ingredientRe.FindAllString(text, -1) {
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

// extractCookTime converts the first "N hours" / "N minutes" expression to
// an ISO 8601 duration. Fallback: the cookTime field is omitted.
func extractCookTime(text string) (string, bool) {
	m := cookTimeRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		return fmt.Sprintf("PT%sH", m[1]), true
	}
	return fmt.Sprintf("PT%sM", m[1]), true
}
