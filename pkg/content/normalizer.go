package content

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/schemaforge/schemaforge/internal/logger"
)

// Normalizer converts raw fetched HTML into the Normalized contract.
// It is safe for concurrent use; the language detector is built lazily
// because lingua's model load is expensive.
type Normalizer struct {
	detectOnce sync.Once
	detector   lingua.LanguageDetector
}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize parses the page and derives every field of the contract in one
// pass. It never fails: unparseable HTML degrades to a text-only record.
func (n *Normalizer) Normalize(pageURL, html string) Normalized {
	result := Normalized{
		URL:  pageURL,
		HTML: html,
		Meta: Meta{OpenGraph: map[string]string{}, Twitter: map[string]string{}},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Debug("html parse failed, deriving signals from raw text", "url", pageURL, "error", err)
		result.Text = html
		result.Signals = DeriveSignals(result.Text, nil)
		return result
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		result.Description = strings.TrimSpace(desc)
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		result.CanonicalURL = strings.TrimSpace(canonical)
	}
	if lang, ok := doc.Find("html").Attr("lang"); ok {
		result.Meta.Language = strings.TrimSpace(lang)
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, ok := sel.Attr("content")
		if !ok {
			return
		}
		if prop, ok := sel.Attr("property"); ok && strings.HasPrefix(prop, "og:") {
			result.Meta.OpenGraph[strings.TrimPrefix(prop, "og:")] = content
		}
		if name, ok := sel.Attr("name"); ok && strings.HasPrefix(name, "twitter:") {
			result.Meta.Twitter[strings.TrimPrefix(name, "twitter:")] = content
		}
	})

	result.Existing = existingMarkup(doc)
	result.Text = n.readableText(pageURL, html, doc)

	if result.Meta.Language == "" {
		if locale := result.OG("locale"); locale != "" {
			result.Meta.Language = locale
		} else if detected := n.detectLanguage(result.Text); detected != "" {
			result.Meta.Language = detected
		}
	}

	result.Signals = DeriveSignals(result.Text, doc)
	return result
}

// readableText prefers readability's article extraction and falls back to
// the full body text when the page has no extractable article.
func (n *Normalizer) readableText(pageURL, html string, doc *goquery.Document) string {
	if parsed, err := url.Parse(pageURL); err == nil {
		article, err := readability.FromReader(strings.NewReader(html), parsed)
		if err == nil && strings.TrimSpace(article.TextContent) != "" {
			return strings.TrimSpace(article.TextContent)
		}
		if err != nil {
			logger.Debug("readability extraction failed, using body text", "url", pageURL, "error", err)
		}
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

func (n *Normalizer) detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	n.detectOnce.Do(func() {
		n.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Spanish, lingua.French,
				lingua.German, lingua.Portuguese, lingua.Italian,
				lingua.Dutch, lingua.Japanese, lingua.Chinese).
			Build()
	})
	if lang, ok := n.detector.DetectLanguageOf(text); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return ""
}

// existingMarkup collects structured data already present on the page:
// JSON-LD script blocks and microdata itemtype declarations.
func existingMarkup(doc *goquery.Document) []ExistingMarkup {
	var found []ExistingMarkup

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return
		}
		m := ExistingMarkup{Format: "json-ld", Raw: raw}
		var body map[string]any
		if err := json.Unmarshal([]byte(raw), &body); err == nil {
			if t, ok := body["@type"].(string); ok {
				m.Type = t
			}
		}
		found = append(found, m)
	})

	doc.Find("[itemtype]").Each(func(_ int, sel *goquery.Selection) {
		itemtype, _ := sel.Attr("itemtype")
		itemtype = strings.TrimSpace(itemtype)
		if itemtype == "" {
			return
		}
		found = append(found, ExistingMarkup{
			Format: "microdata",
			Type:   strings.TrimPrefix(itemtype, "https://schema.org/"),
		})
	})

	return found
}
