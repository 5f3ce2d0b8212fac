// Package content defines the normalized page contract consumed by the
// classification pipeline, and the normalizer that produces it from a raw
// page fetch.
package content

// Meta holds tag-level metadata extracted from the page head.
type Meta struct {
	OpenGraph map[string]string `json:"openGraph,omitempty"`
	Twitter   map[string]string `json:"twitter,omitempty"`
	Language  string            `json:"language,omitempty"`
}

// ExistingMarkup is a structured-data block already present on the page.
type ExistingMarkup struct {
	Format string `json:"format"` // "json-ld" or "microdata"
	Type   string `json:"type"`   // the declared @type / itemtype, if a string
	Raw    string `json:"raw,omitempty"`
}

// Signals is the boolean bag of DOM-derived detections. It is computed once
// by the normalizer; every later stage treats it as ground truth and never
// re-derives a bit from the raw page.
type Signals struct {
	HasPrice        bool `json:"hasPrice"`
	HasCurrency     bool `json:"hasCurrency"`
	HasAddToCart    bool `json:"hasAddToCart"`
	HasSKU          bool `json:"hasSKU"`
	HasRating       bool `json:"hasRating"`
	HasReviews      bool `json:"hasReviews"`
	HasNAP          bool `json:"hasNAP"`
	HasHours        bool `json:"hasHours"`
	HasMap          bool `json:"hasMap"`
	HasEventMarkers bool `json:"hasEventMarkers"`
	HasRecipeMarker bool `json:"hasRecipeMarkers"`
	HasStepMarkers  bool `json:"hasStepMarkers"`
	HasByline       bool `json:"hasByline"`
	HasPublishDate  bool `json:"hasPublishDate"`
	HasBreadcrumbs  bool `json:"hasBreadcrumbs"`
	HasFAQ          bool `json:"hasFAQ"`
	HasVideo        bool `json:"hasVideo"`
	HasNumberedList bool `json:"hasNumberedList"`
}

// Normalized is the single input contract between the fetch collaborator and
// the pipeline. The pipeline never touches the network; everything it may
// ever need from the page is resolved here, up front.
type Normalized struct {
	URL          string           `json:"url"`
	CanonicalURL string           `json:"canonicalUrl,omitempty"`
	Title        string           `json:"title,omitempty"`
	Description  string           `json:"description,omitempty"`
	Text         string           `json:"text,omitempty"`
	HTML         string           `json:"-"`
	Meta         Meta             `json:"meta"`
	Existing     []ExistingMarkup `json:"existing,omitempty"`
	Signals      Signals          `json:"domSignals"`
}

// BaseURL returns the canonical URL when declared, else the fetched URL.
func (n Normalized) BaseURL() string {
	if n.CanonicalURL != "" {
		return n.CanonicalURL
	}
	return n.URL
}

// OG returns an OpenGraph property value, or "" when absent.
func (n Normalized) OG(property string) string {
	if n.Meta.OpenGraph == nil {
		return ""
	}
	return n.Meta.OpenGraph[property]
}
