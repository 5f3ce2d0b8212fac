// Package jsonld models schema.org structured data as typed node variants.
//
// Each node kind carries only its own fields; the open map shape that
// JSON-LD consumers expect is produced only at the serialization boundary
// via Document.AsMap. Nodes with an @id are referenced elsewhere in the
// graph by Ref pointers, never duplicated inline.
package jsonld

import "encoding/json"

// Context is the schema.org JSON-LD context URL.
const Context = "https://schema.org"

// Ref is an @id pointer to another node in the graph.
type Ref struct {
	ID string `json:"@id"`
}

// Document is a @graph-shaped JSON-LD document.
type Document struct {
	Ctx   string `json:"@context"`
	Graph []any  `json:"@graph"`
}

// NewDocument creates a document with the schema.org context.
func NewDocument(nodes ...any) *Document {
	return &Document{Ctx: Context, Graph: nodes}
}

// AsMap projects the typed document into the open map shape. This is the
// only place the typed model leaks into generic JSON; the linter and the
// response body both consume this form.
func (d *Document) AsMap() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Organization is the site publisher node, always present in the graph.
type Organization struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo string `json:"logo,omitempty"`
}

// WebSite is the site node, always present in the graph.
type WebSite struct {
	Type      string `json:"@type"`
	ID        string `json:"@id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Publisher *Ref   `json:"publisher,omitempty"`
}

// ListItem is one entry of a BreadcrumbList or ItemList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// BreadcrumbList is the optional breadcrumb trail node.
type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ID              string     `json:"@id"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// Offer is a Product offer.
type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price,omitempty"`
	PriceCurrency string `json:"priceCurrency,omitempty"`
	Availability  string `json:"availability,omitempty"`
}

// AggregateRating summarizes ratings for a Product or Review subject.
type AggregateRating struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue,omitempty"`
	ReviewCount string `json:"reviewCount,omitempty"`
}

// Mention is a demoted secondary type attached to the primary entity.
type Mention struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
}

// Product is the primary entity for commerce pages.
type Product struct {
	Type            string           `json:"@type"`
	ID              string           `json:"@id"`
	Name            string           `json:"name,omitempty"`
	URL             string           `json:"url,omitempty"`
	Description     string           `json:"description,omitempty"`
	Image           string           `json:"image,omitempty"`
	Offers          *Offer           `json:"offers,omitempty"`
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
	Mentions        []Mention        `json:"mentions,omitempty"`
}

// Article is the primary entity for editorial pages, including the
// BlogPosting, NewsArticle, TechArticle, and Review subtypes.
type Article struct {
	Type          string    `json:"@type"`
	ID            string    `json:"@id"`
	Name          string    `json:"name,omitempty"`
	URL           string    `json:"url,omitempty"`
	Description   string    `json:"description,omitempty"`
	Image         string    `json:"image,omitempty"`
	Author        *Person   `json:"author,omitempty"`
	DatePublished string    `json:"datePublished,omitempty"`
	IsPartOf      *Ref      `json:"isPartOf,omitempty"`
	Publisher     *Ref      `json:"publisher,omitempty"`
	Mentions      []Mention `json:"mentions,omitempty"`
}

// Person is an author node embedded in an Article.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// LocalBusiness is the primary entity for brick-and-mortar pages and its
// keyword-derived subtypes (Restaurant, Dentist, ...).
type LocalBusiness struct {
	Type         string    `json:"@type"`
	ID           string    `json:"@id"`
	Name         string    `json:"name,omitempty"`
	URL          string    `json:"url,omitempty"`
	Description  string    `json:"description,omitempty"`
	Address      string    `json:"address,omitempty"`
	Telephone    string    `json:"telephone,omitempty"`
	OpeningHours string    `json:"openingHours,omitempty"`
	Mentions     []Mention `json:"mentions,omitempty"`
}

// Place is an Event location.
type Place struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Event is the primary entity for event pages.
type Event struct {
	Type        string    `json:"@type"`
	ID          string    `json:"@id"`
	Name        string    `json:"name,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"startDate"`
	Location    *Place    `json:"location"`
	Mentions    []Mention `json:"mentions,omitempty"`
}

// HowToStep is one instruction of a Recipe or HowTo.
type HowToStep struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Recipe is the primary entity for recipe pages.
type Recipe struct {
	Type               string      `json:"@type"`
	ID                 string      `json:"@id"`
	Name               string      `json:"name,omitempty"`
	URL                string      `json:"url,omitempty"`
	Description        string      `json:"description,omitempty"`
	RecipeIngredient   []string    `json:"recipeIngredient"`
	RecipeInstructions []HowToStep `json:"recipeInstructions"`
	CookTime           string      `json:"cookTime,omitempty"`
	Mentions           []Mention   `json:"mentions,omitempty"`
}

// HowTo is the primary entity for instructional pages.
type HowTo struct {
	Type        string      `json:"@type"`
	ID          string      `json:"@id"`
	Name        string      `json:"name,omitempty"`
	URL         string      `json:"url,omitempty"`
	Description string      `json:"description,omitempty"`
	Step        []HowToStep `json:"step"`
	Mentions    []Mention   `json:"mentions,omitempty"`
}

// ItemList is the primary entity for ranked-list pages.
type ItemList struct {
	Type            string     `json:"@type"`
	ID              string     `json:"@id"`
	Name            string     `json:"name,omitempty"`
	URL             string     `json:"url,omitempty"`
	Description     string     `json:"description,omitempty"`
	ItemListElement []ListItem `json:"itemListElement"`
	NumberOfItems   int        `json:"numberOfItems"`
	Mentions        []Mention  `json:"mentions,omitempty"`
}

// WebPage is the default primary entity.
type WebPage struct {
	Type        string    `json:"@type"`
	ID          string    `json:"@id"`
	Name        string    `json:"name,omitempty"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	IsPartOf    *Ref      `json:"isPartOf,omitempty"`
	Mentions    []Mention `json:"mentions,omitempty"`
}
