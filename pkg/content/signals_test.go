package content

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestDeriveSignals_TextPatterns(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(Signals) bool
		field string
	}{
		{"price_symbol", "only $49 today", func(s Signals) bool { return s.HasPrice }, "HasPrice"},
		{"price_code", "costs 19.99 USD shipped", func(s Signals) bool { return s.HasPrice }, "HasPrice"},
		{"currency_word", "prices in EUR", func(s Signals) bool { return s.HasCurrency }, "HasCurrency"},
		{"sku", "SKU: AB-1234", func(s Signals) bool { return s.HasSKU }, "HasSKU"},
		{"rating_fraction", "rated 4.5/5", func(s Signals) bool { return s.HasRating }, "HasRating"},
		{"rating_stars", "five stars from critics", func(s Signals) bool { return s.HasRating }, "HasRating"},
		{"reviews", "based on 87 reviews", func(s Signals) bool { return s.HasReviews }, "HasReviews"},
		{"hours", "Open daily 9am to 5pm", func(s Signals) bool { return s.HasHours }, "HasHours"},
		{"hours_day_range", "Mon-Fri by appointment", func(s Signals) bool { return s.HasHours }, "HasHours"},
		{"event", "doors open at seven", func(s Signals) bool { return s.HasEventMarkers }, "HasEventMarkers"},
		{"recipe", "see the ingredients below", func(s Signals) bool { return s.HasRecipeMarker }, "HasRecipeMarker"},
		{"steps", "Step 1 mix the dough", func(s Signals) bool { return s.HasStepMarkers }, "HasStepMarkers"},
		{"byline", "by Alice Johnson, staff writer", func(s Signals) bool { return s.HasByline }, "HasByline"},
		{"publish_date_iso", "posted 2024-11-02", func(s Signals) bool { return s.HasPublishDate }, "HasPublishDate"},
		{"publish_date_word", "Published last week", func(s Signals) bool { return s.HasPublishDate }, "HasPublishDate"},
		{"breadcrumbs", "Home > Shop > Hats", func(s Signals) bool { return s.HasBreadcrumbs }, "HasBreadcrumbs"},
		{"faq", "read our FAQ first", func(s Signals) bool { return s.HasFAQ }, "HasFAQ"},
		{"numbered_list", "1. First thing\n2. Second thing", func(s Signals) bool { return s.HasNumberedList }, "HasNumberedList"},
		{"add_to_cart_text", "click add to cart to buy", func(s Signals) bool { return s.HasAddToCart }, "HasAddToCart"},
		{"map_directions", "get directions to our office", func(s Signals) bool { return s.HasMap }, "HasMap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DeriveSignals(tt.text, nil)
			if !tt.check(s) {
				t.Errorf("%s not set for %q", tt.field, tt.text)
			}
		})
	}
}

func TestDeriveSignals_NAPNeedsBothPhoneAndAddress(t *testing.T) {
	if s := DeriveSignals("Call (555) 123-4567", nil); s.HasNAP {
		t.Error("phone alone must not set HasNAP")
	}
	if s := DeriveSignals("123 Main Street", nil); s.HasNAP {
		t.Error("address alone must not set HasNAP")
	}
	if s := DeriveSignals("123 Main Street, call (555) 123-4567", nil); !s.HasNAP {
		t.Error("phone plus address must set HasNAP")
	}
}

func TestDeriveSignals_EmptyText(t *testing.T) {
	s := DeriveSignals("", nil)
	if s != (Signals{}) {
		t.Errorf("empty text produced signals: %+v", s)
	}
}

func TestDeriveSignals_DOMAffordances(t *testing.T) {
	html := `<html><body>
		<nav aria-label="breadcrumb"><a href="/">Home</a></nav>
		<button>Add to Cart</button>
		<iframe src="https://maps.google.com/embed?q=office"></iframe>
		<iframe src="https://www.youtube.com/embed/abc"></iframe>
		<span itemprop="ratingValue">4.6</span>
	</body></html>`
	s := DeriveSignals("nothing in the text", mustDoc(t, html))

	if !s.HasAddToCart {
		t.Error("button label must set HasAddToCart")
	}
	if !s.HasMap {
		t.Error("maps iframe must set HasMap")
	}
	if !s.HasVideo {
		t.Error("youtube iframe must set HasVideo")
	}
	if !s.HasBreadcrumbs {
		t.Error("breadcrumb nav must set HasBreadcrumbs")
	}
	if !s.HasRating {
		t.Error("ratingValue itemprop must set HasRating")
	}
}

func TestDeriveSignals_SubmitValueChecked(t *testing.T) {
	html := `<html><body><form><input type="submit" value="Add to basket"></form></body></html>`
	if s := DeriveSignals("plain text", mustDoc(t, html)); !s.HasAddToCart {
		t.Error("submit input value must set HasAddToCart")
	}
}
