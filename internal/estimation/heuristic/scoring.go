package heuristic

import (
	"strings"

	"estimation_backend/internal/estimation/domain"
)

// sourceQuality maps acquisition channels to quality sub-scores, reflecting
// typical conversion rates per channel.
var sourceQuality = map[domain.LeadSource]float64{
	domain.SourceReferral:      1.0,
	domain.SourceWebsite:       0.8,
	domain.SourceSocialMedia:   0.6,
	domain.SourceAdvertisement: 0.5,
	domain.SourceOther:         0.4,
	domain.SourceColdCall:      0.3,
}

var urgencyQuality = map[domain.Urgency]float64{
	domain.UrgencyHigh:   1.0,
	domain.UrgencyMedium: 0.6,
	domain.UrgencyLow:    0.3,
}

// LeadScore computes a deterministic 0-100 lead quality score as the weighted
// sum of normalized sub-scores: budget band, urgency, source quality, profile
// completeness, and location-preference presence.
func (e *Estimator) LeadScore(p domain.LeadProfile) domain.LeadScoreResult {
	w := e.tables.ScoreWeights

	factors := map[string]float64{
		"budget":              budgetBand(p.BudgetMax),
		"urgency":             urgencyQuality[p.Urgency],
		"source":              sourceQuality[p.Source],
		"completeness":        completeness(p),
		"location_preference": locationPreference(p),
	}

	total := w.Budget*factors["budget"] +
		w.Urgency*factors["urgency"] +
		w.Source*factors["source"] +
		w.Completeness*factors["completeness"] +
		w.LocationPref*factors["location_preference"]

	score := clampScore(100 * total)

	return domain.LeadScoreResult{
		Score:          score,
		FactorScores:   factors,
		Recommendation: recommendation(score),
		NextActions:    nextActions(score, p),
		SourceTag:      domain.SourceHeuristic,
	}
}

// budgetBand buckets budgetMax into four bands.
func budgetBand(budgetMax float64) float64 {
	switch {
	case budgetMax >= BudgetBandPremium:
		return 1.0
	case budgetMax >= BudgetBandUpper:
		return 0.75
	case budgetMax >= BudgetBandMid:
		return 0.5
	default:
		return 0.25
	}
}

// completeness is the fraction of optional contact/preference fields populated.
func completeness(p domain.LeadProfile) float64 {
	filled := 0
	if strings.TrimSpace(p.Email) != "" {
		filled++
	}
	if strings.TrimSpace(p.Phone) != "" {
		filled++
	}
	if len(p.PreferredTypes) > 0 {
		filled++
	}
	if len(p.PreferredLocations) > 0 {
		filled++
	}
	return float64(filled) / 4
}

func locationPreference(p domain.LeadProfile) float64 {
	if len(p.PreferredLocations) > 0 {
		return 1.0
	}
	return 0.0
}

func recommendation(score int) string {
	switch {
	case score >= 80:
		return "High priority lead: strong budget and intent, engage immediately."
	case score >= 60:
		return "Promising lead: follow up within one business day."
	case score >= 40:
		return "Moderate lead: nurture with relevant listings and check in weekly."
	default:
		return "Low priority lead: add to the drip campaign and revisit next month."
	}
}

// nextActions is never empty; the engine's contract guarantees callers always
// get at least one follow-up step.
func nextActions(score int, p domain.LeadProfile) []string {
	var actions []string
	switch {
	case score >= 80:
		actions = append(actions, "Call the lead today", "Prepare a shortlist of matching properties")
	case score >= 60:
		actions = append(actions, "Schedule a call this week", "Send matching listings by email")
	case score >= 40:
		actions = append(actions, "Send a follow-up email with market highlights")
	default:
		actions = append(actions, "Enroll in the nurture sequence")
	}
	if len(p.PreferredLocations) == 0 {
		actions = append(actions, "Ask which neighborhoods the lead prefers")
	}
	if p.Phone == "" {
		actions = append(actions, "Request a phone number for faster follow-up")
	}
	return actions
}
