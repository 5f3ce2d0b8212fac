// Package lint checks assembled JSON-LD for schema.org structural
// completeness and rich-results eligibility.
//
// Checks are structural, not semantic: the linter verifies that required
// fields exist and URL-valued fields parse, never that their values are
// true of the real page. Failures surface as error/warning lists, not as
// returned errors.
package lint

import (
	"fmt"
	"net/url"
)

// Report is the lint outcome for one document.
type Report struct {
	SchemaOrgValid      bool     `json:"schemaOrgValid"`
	RichResultsEligible bool     `json:"richResultsEligible"`
	Errors              []string `json:"errors"`
	Warnings            []string `json:"warnings"`
}

// typeChecks is the fixed required/recommended field table. Subtypes are
// folded into their parent family before lookup.
var typeChecks = map[string]struct {
	required    []string
	recommended []string
}{
	"Organization":   {required: []string{"name", "url"}, recommended: []string{"logo"}},
	"WebSite":        {required: []string{"name", "url"}},
	"BreadcrumbList": {required: []string{"itemListElement"}},
	"Product":        {required: []string{"name"}, recommended: []string{"image", "aggregateRating", "offers"}},
	"Article":        {required: []string{"name"}, recommended: []string{"image", "datePublished", "author"}},
	"LocalBusiness":  {required: []string{"name"}, recommended: []string{"address", "telephone"}},
	"Event":          {required: []string{"startDate", "location"}, recommended: []string{"name", "image"}},
	"Recipe":         {required: []string{"name", "recipeIngredient"}, recommended: []string{"image", "cookTime"}},
}

// families folds schema.org subtypes into the family their checks belong to.
var families = map[string]string{
	"BlogPosting":         "Article",
	"NewsArticle":         "Article",
	"TechArticle":         "Article",
	"Review":              "Article",
	"Restaurant":          "LocalBusiness",
	"Dentist":             "LocalBusiness",
	"MedicalOrganization": "LocalBusiness",
	"LodgingBusiness":     "LocalBusiness",
	"Store":               "LocalBusiness",
	"ExerciseGym":         "LocalBusiness",
	"BeautySalon":         "LocalBusiness",
}

// Validate lints a document in its projected map form.
func Validate(doc map[string]any) Report {
	r := Report{Errors: []string{}, Warnings: []string{}}

	if _, ok := doc["@context"]; !ok {
		r.Errors = append(r.Errors, "document is missing @context")
	}
	graph, ok := doc["@graph"].([]any)
	if !ok {
		r.Errors = append(r.Errors, "@graph is missing or not an array")
		return r.finish(nil)
	}

	for i, raw := range graph {
		entity, ok := raw.(map[string]any)
		if !ok {
			r.Errors = append(r.Errors, fmt.Sprintf("graph entity %d is not an object", i))
			continue
		}
		entityType, ok := entity["@type"].(string)
		if !ok || entityType == "" {
			r.Errors = append(r.Errors, fmt.Sprintf("graph entity %d is missing @type", i))
			continue
		}
		r.checkEntity(entityType, entity)
	}

	return r.finish(graph)
}

func (r *Report) checkEntity(entityType string, entity map[string]any) {
	checks, ok := typeChecks[family(entityType)]
	if ok {
		for _, field := range checks.required {
			if !hasValue(entity, field) {
				r.Errors = append(r.Errors, fmt.Sprintf("%s is missing required field %s", entityType, field))
			}
		}
		for _, field := range checks.recommended {
			if !hasValue(entity, field) {
				r.Warnings = append(r.Warnings, fmt.Sprintf("%s is missing recommended field %s", entityType, field))
			}
		}
	}

	// A Product offer that exists must carry price and currency.
	if family(entityType) == "Product" {
		if offers, ok := entity["offers"].(map[string]any); ok {
			if !hasValue(offers, "price") {
				r.Errors = append(r.Errors, "Product offers is missing price")
			}
			if !hasValue(offers, "priceCurrency") {
				r.Errors = append(r.Errors, "Product offers is missing priceCurrency")
			}
		}
	}

	for _, field := range []string{"url", "image"} {
		if raw, ok := entity[field].(string); ok && raw != "" {
			if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
				r.Errors = append(r.Errors, fmt.Sprintf("%s has unparseable %s %q", entityType, field, raw))
			}
		}
	}
}

// finish computes eligibility: only a zero-error document can be eligible,
// and it needs a primary entity passing its type's minimal-field check.
func (r Report) finish(graph []any) Report {
	r.SchemaOrgValid = len(r.Errors) == 0
	if !r.SchemaOrgValid {
		return r
	}
	primary := primaryEntity(graph)
	if primary == nil {
		return r
	}
	entityType, _ := primary["@type"].(string)
	r.RichResultsEligible = eligible(family(entityType), primary)
	return r
}

// primaryEntity finds the first graph node that is not a site anchor.
func primaryEntity(graph []any) map[string]any {
	for _, raw := range graph {
		entity, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch entity["@type"] {
		case "Organization", "WebSite", "BreadcrumbList":
			continue
		}
		return entity
	}
	return nil
}

// eligible applies the type-specific minimal-field presence check. Types
// without a gate (WebPage among them) are eligible whenever schema-valid.
func eligible(familyType string, entity map[string]any) bool {
	switch familyType {
	case "Product":
		return hasValue(entity, "name") && hasValue(entity, "image") && hasValue(entity, "offers")
	case "Article":
		return hasValue(entity, "name") && hasValue(entity, "image") && hasValue(entity, "datePublished")
	case "LocalBusiness":
		return hasValue(entity, "name") && hasValue(entity, "address")
	case "Event":
		return hasValue(entity, "startDate") && hasValue(entity, "location")
	case "Recipe":
		return hasValue(entity, "name") && hasValue(entity, "recipeIngredient")
	case "HowTo":
		return hasValue(entity, "step")
	case "ItemList":
		return hasValue(entity, "itemListElement")
	default:
		return true
	}
}

func family(entityType string) string {
	if f, ok := families[entityType]; ok {
		return f
	}
	return entityType
}

func hasValue(entity map[string]any, field string) bool {
	v, ok := entity[field]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	}
	return true
}
