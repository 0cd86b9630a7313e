// Package transport defines the HTTP request shapes for the estimation
// endpoints. Binding tags cover structural validation; domain Validate covers
// the cross-field rules.
package transport

import (
	"estimation_backend/internal/estimation/domain"
)

// ValuationRequest is the body of POST /estimates/valuation and
// POST /estimates/listing-copy.
type ValuationRequest struct {
	Location     string   `json:"location" binding:"required"`
	Area         float64  `json:"area" binding:"required,gt=0"`
	PropertyType string   `json:"propertyType" binding:"required"`
	Bedrooms     *int     `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	Bathrooms    *int     `json:"bathrooms,omitempty" binding:"omitempty,min=0"`
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
}

// ToDomain converts the DTO to the domain request.
func (r ValuationRequest) ToDomain() domain.ValuationRequest {
	return domain.ValuationRequest{
		Location:     r.Location,
		Area:         r.Area,
		PropertyType: domain.PropertyType(r.PropertyType),
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		YearBuilt:    r.YearBuilt,
		Amenities:    r.Amenities,
	}
}

// LeadProfileRequest is the body of POST /estimates/leads/score.
type LeadProfileRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email,omitempty" binding:"omitempty,email"`
	Phone              string   `json:"phone,omitempty"`
	BudgetMin          float64  `json:"budgetMin" binding:"min=0"`
	BudgetMax          float64  `json:"budgetMax" binding:"min=0"`
	Bedrooms           *int     `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
	PreferredTypes     []string `json:"preferredTypes,omitempty"`
	PreferredLocations []string `json:"preferredLocations,omitempty"`
	Urgency            string   `json:"urgency" binding:"required"`
	Source             string   `json:"source" binding:"required"`
}

// ToDomain converts the DTO to the domain profile.
func (r LeadProfileRequest) ToDomain() domain.LeadProfile {
	return domain.LeadProfile{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		BudgetMin:          r.BudgetMin,
		BudgetMax:          r.BudgetMax,
		Bedrooms:           r.Bedrooms,
		PreferredTypes:     r.PreferredTypes,
		PreferredLocations: r.PreferredLocations,
		Urgency:            domain.Urgency(r.Urgency),
		Source:             domain.LeadSource(r.Source),
	}
}

// BatchScoreRequest is the body of POST /estimates/leads/score/batch.
type BatchScoreRequest struct {
	Leads []LeadProfileRequest `json:"leads" binding:"required,min=1,max=200,dive"`
}

// BatchScoreItem is one entry of the batch scoring response; exactly one of
// Result and Error is set.
type BatchScoreItem struct {
	Result *domain.LeadScoreResult `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

// BatchScoreResponse mirrors the order of the submitted leads.
type BatchScoreResponse struct {
	Results []BatchScoreItem `json:"results"`
}

// MatchCandidateRequest is one candidate inside a match request.
type MatchCandidateRequest struct {
	ID           string  `json:"id" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	PropertyType string  `json:"propertyType" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Bedrooms     *int    `json:"bedrooms,omitempty" binding:"omitempty,min=0"`
}

// ToDomain converts the DTO to the domain candidate.
func (r MatchCandidateRequest) ToDomain() domain.MatchCandidate {
	return domain.MatchCandidate{
		ID:           r.ID,
		Price:        r.Price,
		PropertyType: domain.PropertyType(r.PropertyType),
		Location:     r.Location,
		Bedrooms:     r.Bedrooms,
	}
}

// MatchRequest is the body of POST /estimates/matches.
type MatchRequest struct {
	Lead       LeadProfileRequest      `json:"lead" binding:"required"`
	Candidates []MatchCandidateRequest `json:"candidates" binding:"required,dive"`
	Limit      int                     `json:"limit,omitempty" binding:"omitempty,min=1,max=100"`
}

// MatchResponse wraps the ranked results.
type MatchResponse struct {
	Matches []domain.MatchResult `json:"matches"`
}
