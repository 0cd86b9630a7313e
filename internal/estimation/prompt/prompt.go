// Package prompt renders typed estimation requests into instruction and data
// text for the AI backend. Builders are pure: the same request always produces
// byte-identical output, which the prompt tests rely on. Nothing beyond the
// fields declared on the request types is ever rendered.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"estimation_backend/internal/estimation/domain"
)

// Task names used in logs and prompt headers.
const (
	TaskValuation = "valuation"
	TaskLeadScore = "lead_score"
	TaskMatch     = "match"
	TaskContent   = "listing_copy"
)

// Valuation builds the prompt pair for a property valuation request.
func Valuation(req domain.ValuationRequest) (instruction, data string) {
	var b strings.Builder
	b.WriteString("You are a real estate valuation analyst.\n")
	b.WriteString("Estimate the market value of the property described in the data block.\n")
	b.WriteString("Respond with ONLY a single JSON object, no prose, matching this shape:\n")
	b.WriteString(`{
  "estimatedValue": 0,
  "confidence": 0.0,
  "factorWeights": {"location": 0.0, "size": 0.0, "condition": 0.0},
  "comparables": [{"label": "string", "price": 0, "similarity": 0.0, "distance": 0.0}],
  "summary": "string"
}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- estimatedValue is a plain non-negative number in USD, not a string.\n")
	b.WriteString("- confidence is between 0 and 1.\n")
	b.WriteString("- factorWeights values are between 0 and 1.\n")
	b.WriteString("- comparables may be empty; similarity is 0..1, distance is in miles and >= 0.\n")

	return b.String(), renderProperty(req)
}

// LeadScore builds the prompt pair for lead quality scoring.
func LeadScore(p domain.LeadProfile) (instruction, data string) {
	var b strings.Builder
	b.WriteString("You are a real estate lead qualification analyst.\n")
	b.WriteString("Score the buyer lead described in the data block.\n")
	b.WriteString("Respond with ONLY a single JSON object, no prose, matching this shape:\n")
	b.WriteString(`{
  "score": 0,
  "factorScores": {"budget": 0.0, "urgency": 0.0, "source": 0.0, "completeness": 0.0},
  "recommendation": "string",
  "nextActions": ["string"]
}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- score is an integer between 0 and 100.\n")
	b.WriteString("- factorScores values are between 0 and 1.\n")
	b.WriteString("- nextActions must contain at least one concrete follow-up step.\n")

	return b.String(), renderLead(p)
}

// Match builds the prompt pair for ranking candidates against a lead.
func Match(p domain.LeadProfile, candidates []domain.MatchCandidate, limit int) (instruction, data string) {
	var b strings.Builder
	b.WriteString("You are a real estate matching analyst.\n")
	fmt.Fprintf(&b, "Rank the candidate properties for the buyer lead and return at most the best %d.\n", limit)
	b.WriteString("Respond with ONLY a single JSON array, no prose, of objects matching this shape:\n")
	b.WriteString(`[{
  "candidateId": "string",
  "matchScore": 0,
  "reasons": ["string"],
  "priceAlignment": 0.0,
  "locationMatch": 0.0,
  "featureMatch": 0.0
}]` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- matchScore is an integer between 0 and 100.\n")
	b.WriteString("- priceAlignment, locationMatch and featureMatch are between 0 and 1.\n")
	b.WriteString("- candidateId must be one of the ids in the data block.\n")
	b.WriteString("- Exclude candidates outside the lead's budget.\n")

	var d strings.Builder
	d.WriteString("Lead:\n")
	d.WriteString(renderLead(p))
	d.WriteString("\nCandidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&d, "- id: %s | price: %s | type: %s | location: %s", c.ID, money(c.Price), c.PropertyType, c.Location)
		if c.Bedrooms != nil {
			fmt.Fprintf(&d, " | bedrooms: %d", *c.Bedrooms)
		}
		d.WriteString("\n")
	}

	return b.String(), d.String()
}

// ListingCopy builds the prompt pair for freeform listing content.
func ListingCopy(req domain.ValuationRequest) (instruction, data string) {
	var b strings.Builder
	b.WriteString("You are a real estate copywriter.\n")
	b.WriteString("Write an appealing, factual listing description for the property in the data block.\n")
	b.WriteString("Respond with ONLY a single JSON object, no prose, matching this shape:\n")
	b.WriteString(`{"content": "string"}` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- content is 2-4 sentences and mentions only details present in the data block.\n")

	return b.String(), renderProperty(req)
}

func renderProperty(req domain.ValuationRequest) string {
	var d strings.Builder
	fmt.Fprintf(&d, "location: %s\n", req.Location)
	fmt.Fprintf(&d, "area_sqft: %s\n", trimFloat(req.Area))
	fmt.Fprintf(&d, "property_type: %s\n", req.PropertyType)
	if req.Bedrooms != nil {
		fmt.Fprintf(&d, "bedrooms: %d\n", *req.Bedrooms)
	}
	if req.Bathrooms != nil {
		fmt.Fprintf(&d, "bathrooms: %d\n", *req.Bathrooms)
	}
	if req.YearBuilt != nil {
		fmt.Fprintf(&d, "year_built: %d\n", *req.YearBuilt)
	}
	if len(req.Amenities) > 0 {
		fmt.Fprintf(&d, "amenities: %s\n", strings.Join(sortedCopy(req.Amenities), ", "))
	}
	return d.String()
}

func renderLead(p domain.LeadProfile) string {
	var d strings.Builder
	fmt.Fprintf(&d, "name: %s\n", p.Name)
	if p.Email != "" {
		fmt.Fprintf(&d, "email: %s\n", p.Email)
	}
	if p.Phone != "" {
		fmt.Fprintf(&d, "phone: %s\n", p.Phone)
	}
	fmt.Fprintf(&d, "budget_usd: %s - %s\n", money(p.BudgetMin), money(p.BudgetMax))
	if p.Bedrooms != nil {
		fmt.Fprintf(&d, "preferred_bedrooms: %d\n", *p.Bedrooms)
	}
	if len(p.PreferredTypes) > 0 {
		fmt.Fprintf(&d, "preferred_types: %s\n", strings.Join(sortedCopy(p.PreferredTypes), ", "))
	}
	if len(p.PreferredLocations) > 0 {
		fmt.Fprintf(&d, "preferred_locations: %s\n", strings.Join(sortedCopy(p.PreferredLocations), ", "))
	}
	fmt.Fprintf(&d, "urgency: %s\n", p.Urgency)
	fmt.Fprintf(&d, "source: %s\n", p.Source)
	return d.String()
}

// sortedCopy sorts without mutating the caller's slice, keeping builders pure.
func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}

func money(v float64) string {
	return trimFloat(v)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
