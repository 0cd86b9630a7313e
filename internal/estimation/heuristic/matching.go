package heuristic

import (
	"sort"
	"strings"

	"estimation_backend/internal/estimation/domain"
)

// Sub-score levels for partially matching candidates.
const (
	locationMissScore  = 0.3
	featureMissScore   = 0.5
	bedroomNoPrefScore = 0.8
	bedroomMissScore   = 0.7
	bedroomExactScore  = 1.0
)

// Match filters and ranks candidates for a lead. Candidates survive the hard
// filter when their price falls inside the budget AND they match either the
// preferred types or a preferred location. Survivors are scored 0-100 and the
// top limit are returned, sorted by score descending with ties broken by
// ascending candidate ID.
func (e *Estimator) Match(lead domain.LeadProfile, candidates []domain.MatchCandidate, limit int) []domain.MatchResult {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	w := e.tables.MatchWeights

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if !withinBudget(lead, c.Price) {
			continue
		}
		typeOK := matchesType(lead, c)
		locOK := matchesLocation(lead, c)
		if !typeOK && !locOK {
			continue
		}

		priceAlign := priceAlignment(lead, c.Price)

		locScore := locationMissScore
		if locOK {
			locScore = 1.0
		}
		featScore := featureMissScore
		if typeOK {
			featScore = 1.0
		}
		bedScore := bedroomScore(lead, c)

		score := clampScore(100 * (w.Price*priceAlign + w.Location*locScore + w.Feature*featScore + w.Bedrooms*bedScore))

		results = append(results, domain.MatchResult{
			CandidateID:   c.ID,
			MatchScore:    score,
			Reasons:       matchReasons(priceAlign, locOK, typeOK, bedScore),
			PriceAlign:    priceAlign,
			LocationMatch: locScore,
			FeatureMatch:  featScore,
			SourceTag:     domain.SourceHeuristic,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func withinBudget(lead domain.LeadProfile, price float64) bool {
	return price >= lead.BudgetMin && price <= lead.BudgetMax
}

// priceAlignment measures distance from the budget midpoint, clamped to >= 0.
func priceAlignment(lead domain.LeadProfile, price float64) float64 {
	if lead.BudgetMax <= 0 {
		return 1.0
	}
	mid := (lead.BudgetMin + lead.BudgetMax) / 2
	align := 1 - abs(price-mid)/lead.BudgetMax
	return clampFloat(align, 0, 1)
}

func matchesType(lead domain.LeadProfile, c domain.MatchCandidate) bool {
	for _, t := range lead.PreferredTypes {
		if strings.EqualFold(t, string(c.PropertyType)) {
			return true
		}
	}
	return false
}

func matchesLocation(lead domain.LeadProfile, c domain.MatchCandidate) bool {
	loc := strings.ToLower(c.Location)
	for _, pref := range lead.PreferredLocations {
		p := strings.ToLower(strings.TrimSpace(pref))
		if p != "" && strings.Contains(loc, p) {
			return true
		}
	}
	return false
}

func bedroomScore(lead domain.LeadProfile, c domain.MatchCandidate) float64 {
	if lead.Bedrooms == nil {
		return bedroomNoPrefScore
	}
	if c.Bedrooms != nil && *c.Bedrooms == *lead.Bedrooms {
		return bedroomExactScore
	}
	return bedroomMissScore
}

func matchReasons(priceAlign float64, locOK, typeOK bool, bedScore float64) []string {
	var reasons []string
	if priceAlign >= 0.8 {
		reasons = append(reasons, "price sits comfortably within budget")
	} else if priceAlign >= 0.5 {
		reasons = append(reasons, "price is within budget")
	}
	if locOK {
		reasons = append(reasons, "matches a preferred location")
	}
	if typeOK {
		reasons = append(reasons, "matches a preferred property type")
	}
	if bedScore == bedroomExactScore {
		reasons = append(reasons, "bedroom count matches the preference")
	}
	return reasons
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
