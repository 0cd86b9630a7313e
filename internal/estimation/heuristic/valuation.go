package heuristic

import (
	"fmt"
	"math"
	"time"

	"estimation_backend/internal/estimation/domain"
)

// typeMultipliers scales the base rate per property category.
var typeMultipliers = map[domain.PropertyType]float64{
	domain.PropertyApartment:  1.0,
	domain.PropertyVilla:      1.4,
	domain.PropertyCommercial: 1.8,
	domain.PropertyLand:       0.6,
	domain.PropertyPenthouse:  2.0,
	domain.PropertyStudio:     0.8,
}

// Fixed factor weights reported with heuristic valuations. They need not sum
// to 1; callers only compare their order.
var valuationFactorWeights = map[string]float64{
	"location":      0.35,
	"size":          0.25,
	"property_type": 0.20,
	"age":           0.12,
	"amenities":     0.08,
}

// Estimator computes deterministic valuation, scoring and matching results.
// It holds only read-only tables and a clock, so it is safe for concurrent use.
type Estimator struct {
	tables Tables
	now    func() time.Time
}

// New creates an estimator over the given tables.
func New(tables Tables) *Estimator {
	return &Estimator{tables: tables, now: time.Now}
}

// SetClock overrides the clock used for property age (test seam; the
// determinism law holds for a fixed clock).
func (e *Estimator) SetClock(now func() time.Time) {
	e.now = now
}

// Valuation computes:
//
//	value = baseRate(location) × area × typeMultiplier × ageMultiplier × amenityBonus
//
// where ageMultiplier = max(0.7, 1 − 0.01×age) with age defaulting to 10 years
// when yearBuilt is absent, and amenityBonus = 1 + 0.03×count(amenities).
func (e *Estimator) Valuation(req domain.ValuationRequest) domain.ValuationResult {
	rate := e.tables.baseRate(req.Location)

	typeMult, ok := typeMultipliers[req.PropertyType]
	if !ok {
		typeMult = 1.0
	}

	age := defaultAgeYears
	if req.YearBuilt != nil {
		age = e.now().Year() - *req.YearBuilt
		if age < 0 {
			age = 0
		}
	}
	ageMult := math.Max(minAgeMultiplier, 1-ageDecayPerYear*float64(age))

	amenityBonus := 1 + amenityBonusPerItem*float64(len(req.Amenities))

	value := rate * req.Area * typeMult * ageMult * amenityBonus
	if value < 0 {
		value = 0
	}

	weights := make(map[string]float64, len(valuationFactorWeights))
	for k, v := range valuationFactorWeights {
		weights[k] = v
	}

	return domain.ValuationResult{
		EstimatedValue: round2(value),
		Confidence:     ValuationConfidence,
		FactorWeights:  weights,
		Comparables:    syntheticComparables(value),
		Summary: fmt.Sprintf(
			"Estimated %s in %s at %.0f USD based on %.0f sqft and local market rates.",
			req.PropertyType, req.Location, value, req.Area,
		),
		SourceTag: domain.SourceHeuristic,
	}
}

// syntheticComparables derives reference points from the estimate itself.
// The offsets are fixed so repeated calls stay byte-identical.
func syntheticComparables(value float64) []domain.Comparable {
	if value <= 0 {
		return nil
	}
	return []domain.Comparable{
		{Label: "Recent sale, same neighborhood", Price: round2(value * 0.95), Similarity: 0.9, Distance: 0.4},
		{Label: "Active listing, similar size", Price: round2(value * 1.02), Similarity: 0.85, Distance: 0.8},
		{Label: "Closed sale, adjacent area", Price: round2(value * 0.9), Similarity: 0.8, Distance: 1.3},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
