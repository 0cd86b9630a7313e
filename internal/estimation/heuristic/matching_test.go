package heuristic

import (
	"testing"

	"estimation_backend/internal/estimation/domain"
)

func matchLead() domain.LeadProfile {
	return domain.LeadProfile{
		Name:               "Dana",
		BudgetMin:          200_000,
		BudgetMax:          400_000,
		Bedrooms:           intPtr(2),
		PreferredTypes:     []string{"apartment"},
		PreferredLocations: []string{"austin"},
		Urgency:            domain.UrgencyHigh,
		Source:             domain.SourceReferral,
	}
}

func TestMatchFiltersAndRanks(t *testing.T) {
	e := newTestEstimator()
	candidates := []domain.MatchCandidate{
		{ID: "perfect", Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin, TX", Bedrooms: intPtr(2)},
		{ID: "wrong-area", Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Dallas, TX", Bedrooms: intPtr(3)},
		{ID: "no-overlap", Price: 350_000, PropertyType: domain.PropertyVilla, Location: "Dallas, TX"},
		{ID: "too-expensive", Price: 500_000, PropertyType: domain.PropertyApartment, Location: "Austin, TX"},
		{ID: "too-cheap", Price: 150_000, PropertyType: domain.PropertyApartment, Location: "Austin, TX"},
	}

	results := e.Match(matchLead(), candidates, 10)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].CandidateID != "perfect" || results[1].CandidateID != "wrong-area" {
		t.Fatalf("order = [%s, %s]", results[0].CandidateID, results[1].CandidateID)
	}
	// Budget midpoint, both preferences and the bedroom count all line up.
	if results[0].MatchScore != 100 {
		t.Errorf("perfect score = %d, want 100", results[0].MatchScore)
	}
	// 0.4*1.0 + 0.3*0.3 + 0.2*1.0 + 0.1*0.7
	if results[1].MatchScore != 76 {
		t.Errorf("wrong-area score = %d, want 76", results[1].MatchScore)
	}
	for _, r := range results {
		if r.SourceTag != domain.SourceHeuristic {
			t.Errorf("candidate %s SourceTag = %q", r.CandidateID, r.SourceTag)
		}
	}
}

func TestMatchNoCandidatesInBudget(t *testing.T) {
	e := newTestEstimator()
	candidates := []domain.MatchCandidate{
		{ID: "c-1", Price: 900_000, PropertyType: domain.PropertyApartment, Location: "Austin"},
		{ID: "c-2", Price: 50_000, PropertyType: domain.PropertyApartment, Location: "Austin"},
	}

	if results := e.Match(matchLead(), candidates, 10); len(results) != 0 {
		t.Fatalf("expected empty result set, got %+v", results)
	}
}

func TestMatchLimit(t *testing.T) {
	e := newTestEstimator()
	var candidates []domain.MatchCandidate
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, domain.MatchCandidate{
			ID: id, Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin",
		})
	}

	results := e.Match(matchLead(), candidates, 2)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestMatchTieBreaksOnCandidateID(t *testing.T) {
	e := newTestEstimator()
	candidates := []domain.MatchCandidate{
		{ID: "zeta", Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin"},
		{ID: "alpha", Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin"},
	}

	results := e.Match(matchLead(), candidates, 10)
	if len(results) != 2 || results[0].MatchScore != results[1].MatchScore {
		t.Fatalf("expected two tied results, got %+v", results)
	}
	if results[0].CandidateID != "alpha" {
		t.Fatalf("tie broken wrong: first is %s", results[0].CandidateID)
	}
}

func TestMatchLocationOnlyCandidateSurvivesFilter(t *testing.T) {
	e := newTestEstimator()
	candidates := []domain.MatchCandidate{
		{ID: "loc-only", Price: 300_000, PropertyType: domain.PropertyVilla, Location: "Downtown Austin"},
	}

	results := e.Match(matchLead(), candidates, 10)
	if len(results) != 1 {
		t.Fatalf("location-only candidate filtered out")
	}
	if results[0].FeatureMatch != featureMissScore {
		t.Errorf("FeatureMatch = %v, want %v", results[0].FeatureMatch, featureMissScore)
	}
	if results[0].LocationMatch != 1.0 {
		t.Errorf("LocationMatch = %v, want 1.0", results[0].LocationMatch)
	}
}

func TestMatchZeroLimitUsesDefault(t *testing.T) {
	e := newTestEstimator()
	var candidates []domain.MatchCandidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, domain.MatchCandidate{
			ID: string(rune('a' + i)), Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin",
		})
	}

	if results := e.Match(matchLead(), candidates, 0); len(results) != DefaultMatchLimit {
		t.Fatalf("got %d results, want %d", len(results), DefaultMatchLimit)
	}
}

func TestPriceAlignment(t *testing.T) {
	lead := matchLead() // budget 200k-400k, midpoint 300k

	if got := priceAlignment(lead, 300_000); got != 1.0 {
		t.Errorf("midpoint alignment = %v, want 1.0", got)
	}
	if got := priceAlignment(lead, 400_000); got != 0.75 {
		t.Errorf("upper bound alignment = %v, want 0.75", got)
	}
	open := domain.LeadProfile{Name: "x"}
	if got := priceAlignment(open, 123); got != 1.0 {
		t.Errorf("open budget alignment = %v, want 1.0", got)
	}
}
