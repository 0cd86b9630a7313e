// Package heuristic is the deterministic fallback estimator. Every function
// here is pure and total: identical input yields identical output, and no
// input can make it fail. The engine invokes it whenever the AI path fails.
package heuristic

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"estimation_backend/platform/validator"
)

// Valuation constants. The confidence is a fixed midpoint rather than a
// randomized value so the fallback stays reproducible.
const (
	// ValuationConfidence is the confidence reported for every heuristic valuation.
	ValuationConfidence = 0.85
	// DefaultBaseRate is the per-sqft rate for locations missing from the table.
	DefaultBaseRate = 180.0

	defaultAgeYears     = 10
	minAgeMultiplier    = 0.7
	ageDecayPerYear     = 0.01
	amenityBonusPerItem = 0.03
)

// Lead scoring weights and budget bands. Exported as named constants so tests
// can assert on them directly; treat them as product decisions, not ground truth.
const (
	WeightBudget       = 0.30
	WeightUrgency      = 0.25
	WeightSource       = 0.20
	WeightCompleteness = 0.15
	WeightLocationPref = 0.10

	BudgetBandPremium = 1_000_000.0 // budgetMax at or above: sub-score 1.0
	BudgetBandUpper   = 500_000.0   // sub-score 0.75
	BudgetBandMid     = 200_000.0   // sub-score 0.5; below: 0.25
)

// DefaultMatchLimit caps match results when the caller passes no limit.
const DefaultMatchLimit = 10

// ScoreWeights are the lead scoring weights, overridable from the tables file.
type ScoreWeights struct {
	Budget       float64 `yaml:"budget" validate:"gte=0,lte=1"`
	Urgency      float64 `yaml:"urgency" validate:"gte=0,lte=1"`
	Source       float64 `yaml:"source" validate:"gte=0,lte=1"`
	Completeness float64 `yaml:"completeness" validate:"gte=0,lte=1"`
	LocationPref float64 `yaml:"location_pref" validate:"gte=0,lte=1"`
}

// MatchWeights are the candidate ranking weights, overridable from the tables file.
type MatchWeights struct {
	Price    float64 `yaml:"price" validate:"gte=0,lte=1"`
	Location float64 `yaml:"location" validate:"gte=0,lte=1"`
	Feature  float64 `yaml:"feature" validate:"gte=0,lte=1"`
	Bedrooms float64 `yaml:"bedrooms" validate:"gte=0,lte=1"`
}

// Tables bundles every tunable lookup the estimator uses.
type Tables struct {
	// BaseRates maps a normalized location name to a USD per-sqft rate.
	BaseRates map[string]float64 `yaml:"base_rates" validate:"dive,gt=0"`
	// DefaultRate applies to locations missing from BaseRates.
	DefaultRate  float64      `yaml:"default_rate" validate:"gte=0"`
	ScoreWeights ScoreWeights `yaml:"score_weights"`
	MatchWeights MatchWeights `yaml:"match_weights"`
}

// DefaultTables returns the compiled-in tables.
func DefaultTables() Tables {
	return Tables{
		BaseRates: map[string]float64{
			"austin":        220,
			"dallas":        200,
			"houston":       190,
			"san antonio":   170,
			"phoenix":       210,
			"atlanta":       230,
			"chicago":       240,
			"denver":        260,
			"miami":         310,
			"seattle":       340,
			"boston":        380,
			"los angeles":   420,
			"new york":      450,
			"san francisco": 500,
		},
		DefaultRate: DefaultBaseRate,
		ScoreWeights: ScoreWeights{
			Budget:       WeightBudget,
			Urgency:      WeightUrgency,
			Source:       WeightSource,
			Completeness: WeightCompleteness,
			LocationPref: WeightLocationPref,
		},
		MatchWeights: MatchWeights{
			Price:    0.4,
			Location: 0.3,
			Feature:  0.2,
			Bedrooms: 0.1,
		},
	}
}

// LoadTables reads YAML overrides over the defaults. A missing path returns
// the defaults; a present but unreadable file is an error so typos in config
// do not silently fall back.
func LoadTables(path string) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read heuristic tables file: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("unmarshal heuristic tables: %w", err)
	}
	if err := validator.Validate.Struct(t); err != nil {
		return t, fmt.Errorf("invalid heuristic tables: %w", err)
	}
	return t, nil
}

// baseRate looks up the per-sqft rate for a location, case-insensitively.
func (t Tables) baseRate(location string) float64 {
	key := strings.ToLower(strings.TrimSpace(location))
	if rate, ok := t.BaseRates[key]; ok {
		return rate
	}
	if t.DefaultRate > 0 {
		return t.DefaultRate
	}
	return DefaultBaseRate
}
