package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	priceRe        = regexp.MustCompile(`[$€£¥]\s?\d|(?i)\b\d+[.,]\d{2}\s?(?:usd|eur|gbp)\b`)
	currencyRe     = regexp.MustCompile(`[$€£¥]|(?i)\b(?:usd|eur|gbp|jpy|cad|aud)\b`)
	skuRe          = regexp.MustCompile(`(?i)\bsku[:\s#]`)
	ratingRe       = regexp.MustCompile(`(?i)(\d(?:\.\d)?)\s*(?:/|out of)\s*5|★|\bstars?\b`)
	reviewsRe      = regexp.MustCompile(`(?i)\b\d+\s+reviews?\b|\bcustomer reviews\b`)
	phoneRe        = regexp.MustCompile(`\(?\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}`)
	addressRe      = regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z]+\s+(?:st|street|ave|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way)\b`)
	hoursRe        = regexp.MustCompile(`(?i)\b(?:open|hours)\b.{0,40}\d{1,2}(?::\d{2})?\s?(?:am|pm)|\b(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\s*[-–]\s*(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\b`)
	eventRe        = regexp.MustCompile(`(?i)\b(?:doors open|rsvp|save the date|upcoming events?|concert|conference|meetup|webinar)\b`)
	recipeRe       = regexp.MustCompile(`(?i)\b(?:ingredients|servings|prep time|cook time|recipe)\b`)
	stepRe         = regexp.MustCompile(`(?im)^\s*(?:step\s+\d+|\d+\.)\s`)
	bylineRe       = regexp.MustCompile(`(?i)\b(?:by|written by|author:)\s+[A-Z][a-z]+`)
	publishDateRe  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|(?i)\bpublished\b`)
	breadcrumbRe   = regexp.MustCompile(`(?i)home\s*[>›»]\s*\S`)
	faqRe          = regexp.MustCompile(`(?i)\b(?:faq|frequently asked questions)\b`)
	numberedListRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+\S`)
)

// DeriveSignals scans the page once and fills the boolean signal bag.
// Text-level patterns run over the readable text; affordance-level checks
// (buttons, embeds, nav landmarks) run over the parsed DOM when available.
// doc may be nil, in which case only text patterns contribute.
func DeriveSignals(text string, doc *goquery.Document) Signals {
	s := Signals{
		HasPrice:        priceRe.MatchString(text),
		HasCurrency:     currencyRe.MatchString(text),
		HasSKU:          skuRe.MatchString(text),
		HasRating:       ratingRe.MatchString(text),
		HasReviews:      reviewsRe.MatchString(text),
		HasHours:        hoursRe.MatchString(text),
		HasEventMarkers: eventRe.MatchString(text),
		HasRecipeMarker: recipeRe.MatchString(text),
		HasStepMarkers:  stepRe.MatchString(text),
		HasByline:       bylineRe.MatchString(text),
		HasPublishDate:  publishDateRe.MatchString(text),
		HasBreadcrumbs:  breadcrumbRe.MatchString(text),
		HasFAQ:          faqRe.MatchString(text),
		HasNumberedList: numberedListRe.MatchString(text),
	}
	s.HasNAP = phoneRe.MatchString(text) && addressRe.MatchString(text)
	s.HasAddToCart = strings.Contains(strings.ToLower(text), "add to cart")
	s.HasMap = strings.Contains(strings.ToLower(text), "directions") ||
		strings.Contains(strings.ToLower(text), "find us")

	if doc != nil {
		if !s.HasAddToCart {
			doc.Find("button, a, input[type=submit]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				label := strings.ToLower(strings.TrimSpace(sel.Text()))
				if label == "" {
					label, _ = sel.Attr("value")
					label = strings.ToLower(label)
				}
				if strings.Contains(label, "add to cart") || strings.Contains(label, "add to basket") {
					s.HasAddToCart = true
					return false
				}
				return true
			})
		}
		if !s.HasMap {
			s.HasMap = doc.Find(`iframe[src*="maps.google"], iframe[src*="openstreetmap"]`).Length() > 0
		}
		s.HasVideo = doc.Find(`video, iframe[src*="youtube"], iframe[src*="vimeo"]`).Length() > 0
		if !s.HasBreadcrumbs {
			s.HasBreadcrumbs = doc.Find(`nav[aria-label="breadcrumb"], .breadcrumb, .breadcrumbs`).Length() > 0
		}
		if !s.HasRating {
			s.HasRating = doc.Find(`[itemprop="ratingValue"]`).Length() > 0
		}
	}
	return s
}
