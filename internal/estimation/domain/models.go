// Package domain defines the value types exchanged with the estimation engine.
// Requests are validated at construction; results are created per call and
// never persisted.
package domain

import (
	"fmt"
	"strings"

	"estimation_backend/platform/apperr"
)

// PropertyType enumerates the supported property categories.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyVilla      PropertyType = "villa"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
	PropertyPenthouse  PropertyType = "penthouse"
	PropertyStudio     PropertyType = "studio"
)

// Urgency enumerates how quickly a lead wants to transact.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// LeadSource enumerates acquisition channels.
type LeadSource string

const (
	SourceReferral      LeadSource = "referral"
	SourceWebsite       LeadSource = "website"
	SourceSocialMedia   LeadSource = "social_media"
	SourceAdvertisement LeadSource = "advertisement"
	SourceColdCall      LeadSource = "cold_call"
	SourceOther         LeadSource = "other"
)

// SourceTag marks which path produced a result.
type SourceTag string

const (
	// SourceAI means the result came from a validated AI backend payload.
	SourceAI SourceTag = "AI"
	// SourceHeuristic means the result came from the deterministic fallback.
	SourceHeuristic SourceTag = "HEURISTIC"
)

// ValuationRequest describes a property to be valued.
type ValuationRequest struct {
	Location     string
	Area         float64 // square feet
	PropertyType PropertyType
	Bedrooms     *int
	Bathrooms    *int
	YearBuilt    *int
	Amenities    []string
}

// Validate rejects malformed requests before the engine is invoked. This is
// the only error surface visible outside the engine.
func (r ValuationRequest) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return apperr.Validation("location is required")
	}
	if r.Area <= 0 {
		return apperr.Validation("area must be positive")
	}
	if !validPropertyType(r.PropertyType) {
		return apperr.Validation(fmt.Sprintf("unknown property type %q", r.PropertyType))
	}
	if r.Bedrooms != nil && *r.Bedrooms < 0 {
		return apperr.Validation("bedrooms cannot be negative")
	}
	if r.Bathrooms != nil && *r.Bathrooms < 0 {
		return apperr.Validation("bathrooms cannot be negative")
	}
	if r.YearBuilt != nil && (*r.YearBuilt < 1800 || *r.YearBuilt > 2200) {
		return apperr.Validation("yearBuilt is out of range")
	}
	return nil
}

// Comparable is a reference sale used to support a valuation.
type Comparable struct {
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	Similarity float64 `json:"similarity"` // 0..1
	Distance   float64 `json:"distance"`   // >= 0
}

// ValuationResult is the engine's answer to a ValuationRequest.
// EstimatedValue is always populated and Confidence is always in [0,1].
type ValuationResult struct {
	EstimatedValue float64            `json:"estimatedValue"`
	Confidence     float64            `json:"confidence"`
	FactorWeights  map[string]float64 `json:"factorWeights"`
	Comparables    []Comparable       `json:"comparables"`
	Summary        string             `json:"summary"`
	SourceTag      SourceTag          `json:"sourceTag"`
}

// LeadProfile describes a prospective buyer.
type LeadProfile struct {
	Name               string
	Email              string
	Phone              string
	BudgetMin          float64
	BudgetMax          float64
	Bedrooms           *int // preferred bedroom count, if any
	PreferredTypes     []string
	PreferredLocations []string
	Urgency            Urgency
	Source             LeadSource
}

// Validate rejects malformed profiles before the engine is invoked.
func (p LeadProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name is required")
	}
	if p.BudgetMin < 0 || p.BudgetMax < 0 {
		return apperr.Validation("budget bounds cannot be negative")
	}
	if p.BudgetMin > p.BudgetMax {
		return apperr.Validation("budgetMin cannot exceed budgetMax")
	}
	if !validUrgency(p.Urgency) {
		return apperr.Validation(fmt.Sprintf("unknown urgency %q", p.Urgency))
	}
	if !validSource(p.Source) {
		return apperr.Validation(fmt.Sprintf("unknown lead source %q", p.Source))
	}
	return nil
}

// LeadScoreResult grades a lead 0-100 with per-factor detail.
// NextActions is never empty.
type LeadScoreResult struct {
	Score          int                `json:"score"`
	FactorScores   map[string]float64 `json:"factorScores"`
	Recommendation string             `json:"recommendation"`
	NextActions    []string           `json:"nextActions"`
	SourceTag      SourceTag          `json:"sourceTag"`
}

// MatchCandidate is a property scored against a lead.
type MatchCandidate struct {
	ID           string
	Price        float64
	PropertyType PropertyType
	Location     string
	Bedrooms     *int
}

// Validate rejects malformed candidates.
func (c MatchCandidate) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return apperr.Validation("candidate id is required")
	}
	if c.Price < 0 {
		return apperr.Validation("candidate price cannot be negative")
	}
	if !validPropertyType(c.PropertyType) {
		return apperr.Validation(fmt.Sprintf("unknown property type %q for candidate %s", c.PropertyType, c.ID))
	}
	return nil
}

// MatchResult ranks one candidate for a lead.
type MatchResult struct {
	CandidateID   string    `json:"candidateId"`
	MatchScore    int       `json:"matchScore"`
	Reasons       []string  `json:"reasons"`
	PriceAlign    float64   `json:"priceAlignment"`
	LocationMatch float64   `json:"locationMatch"`
	FeatureMatch  float64   `json:"featureMatch"`
	SourceTag     SourceTag `json:"sourceTag"`
}

// ContentResult is generated listing copy for a property.
type ContentResult struct {
	Content   string    `json:"content"`
	SourceTag SourceTag `json:"sourceTag"`
}

func validPropertyType(t PropertyType) bool {
	switch t {
	case PropertyApartment, PropertyVilla, PropertyCommercial, PropertyLand, PropertyPenthouse, PropertyStudio:
		return true
	}
	return false
}

func validUrgency(u Urgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

func validSource(s LeadSource) bool {
	switch s {
	case SourceReferral, SourceWebsite, SourceSocialMedia, SourceAdvertisement, SourceColdCall, SourceOther:
		return true
	}
	return false
}
