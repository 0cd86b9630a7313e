// Package extract pulls the first well-formed JSON payload out of free-form
// AI backend text and validates it against the expected shape. Validation
// failures are typed so the engine can log why it fell back; the extractor
// rejects out-of-range values instead of clamping them, so that bad upstream
// data stays observable in tests.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoStructureFound means no balanced JSON object/array was found, or
	// the found span failed to parse.
	ErrNoStructureFound = errors.New("extract: no structured payload found")
	// ErrShapeMismatch means a required field is missing or of the wrong kind.
	ErrShapeMismatch = errors.New("extract: payload shape mismatch")
	// ErrOutOfRangeValue means a field parsed but its value is nonsensical.
	ErrOutOfRangeValue = errors.New("extract: value out of range")
)

// FirstObject returns the first balanced {...} span in raw.
// The scan is character-by-character with string awareness, so braces inside
// string values or surrounding prose do not truncate the match.
func FirstObject(raw string) (string, error) {
	return firstSpan(raw, '{', '}')
}

// FirstArray returns the first balanced [...] span in raw.
func FirstArray(raw string) (string, error) {
	return firstSpan(raw, '[', ']')
}

func firstSpan(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	if start < 0 {
		return "", ErrNoStructureFound
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}
	return "", ErrNoStructureFound
}

// ValuationPayload is the expected shape of an AI valuation response.
// Required fields are pointers so absence is distinguishable from zero.
type ValuationPayload struct {
	EstimatedValue *float64            `json:"estimatedValue"`
	Confidence     *float64            `json:"confidence"`
	FactorWeights  map[string]float64  `json:"factorWeights"`
	Comparables    []ComparablePayload `json:"comparables"`
	Summary        *string             `json:"summary"`
}

// ComparablePayload is one comparable sale inside a valuation payload.
type ComparablePayload struct {
	Label      string  `json:"label"`
	Price      float64 `json:"price"`
	Similarity float64 `json:"similarity"`
	Distance   float64 `json:"distance"`
}

// Valuation extracts and validates a valuation payload from raw text.
func Valuation(raw string) (*ValuationPayload, error) {
	var p ValuationPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, err
	}
	if p.EstimatedValue == nil {
		return nil, fmt.Errorf("%w: missing estimatedValue", ErrShapeMismatch)
	}
	if p.Confidence == nil {
		return nil, fmt.Errorf("%w: missing confidence", ErrShapeMismatch)
	}
	if p.Summary == nil {
		return nil, fmt.Errorf("%w: missing summary", ErrShapeMismatch)
	}
	if *p.EstimatedValue < 0 {
		return nil, fmt.Errorf("%w: negative estimatedValue", ErrOutOfRangeValue)
	}
	if *p.Confidence < 0 || *p.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v not in [0,1]", ErrOutOfRangeValue, *p.Confidence)
	}
	for name, w := range p.FactorWeights {
		if w < 0 || w > 1 {
			return nil, fmt.Errorf("%w: factor weight %q = %v not in [0,1]", ErrOutOfRangeValue, name, w)
		}
	}
	for _, c := range p.Comparables {
		if c.Price < 0 || c.Distance < 0 || c.Similarity < 0 || c.Similarity > 1 {
			return nil, fmt.Errorf("%w: comparable %q has out-of-range values", ErrOutOfRangeValue, c.Label)
		}
	}
	return &p, nil
}

// LeadScorePayload is the expected shape of an AI lead scoring response.
type LeadScorePayload struct {
	Score          *int               `json:"score"`
	FactorScores   map[string]float64 `json:"factorScores"`
	Recommendation *string            `json:"recommendation"`
	NextActions    []string           `json:"nextActions"`
}

// LeadScore extracts and validates a lead score payload from raw text.
func LeadScore(raw string) (*LeadScorePayload, error) {
	var p LeadScorePayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, err
	}
	if p.Score == nil {
		return nil, fmt.Errorf("%w: missing score", ErrShapeMismatch)
	}
	if p.Recommendation == nil {
		return nil, fmt.Errorf("%w: missing recommendation", ErrShapeMismatch)
	}
	if len(p.NextActions) == 0 {
		return nil, fmt.Errorf("%w: nextActions is empty", ErrShapeMismatch)
	}
	if *p.Score < 0 || *p.Score > 100 {
		return nil, fmt.Errorf("%w: score %d not in [0,100]", ErrOutOfRangeValue, *p.Score)
	}
	for name, v := range p.FactorScores {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%w: factor score %q = %v not in [0,1]", ErrOutOfRangeValue, name, v)
		}
	}
	return &p, nil
}

// MatchPayload is one ranked candidate inside an AI matching response.
type MatchPayload struct {
	CandidateID    *string  `json:"candidateId"`
	MatchScore     *int     `json:"matchScore"`
	Reasons        []string `json:"reasons"`
	PriceAlignment *float64 `json:"priceAlignment"`
	LocationMatch  *float64 `json:"locationMatch"`
	FeatureMatch   *float64 `json:"featureMatch"`
}

// Matches extracts and validates an array of match payloads from raw text.
func Matches(raw string) ([]MatchPayload, error) {
	span, err := FirstArray(raw)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(span)) {
		return nil, ErrNoStructureFound
	}
	var items []MatchPayload
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	for i, m := range items {
		if m.CandidateID == nil || *m.CandidateID == "" {
			return nil, fmt.Errorf("%w: item %d missing candidateId", ErrShapeMismatch, i)
		}
		if m.MatchScore == nil {
			return nil, fmt.Errorf("%w: item %d missing matchScore", ErrShapeMismatch, i)
		}
		if *m.MatchScore < 0 || *m.MatchScore > 100 {
			return nil, fmt.Errorf("%w: item %d matchScore %d not in [0,100]", ErrOutOfRangeValue, i, *m.MatchScore)
		}
		for name, v := range map[string]*float64{
			"priceAlignment": m.PriceAlignment,
			"locationMatch":  m.LocationMatch,
			"featureMatch":   m.FeatureMatch,
		} {
			if v == nil {
				return nil, fmt.Errorf("%w: item %d missing %s", ErrShapeMismatch, i, name)
			}
			if *v < 0 || *v > 1 {
				return nil, fmt.Errorf("%w: item %d %s = %v not in [0,1]", ErrOutOfRangeValue, i, name, *v)
			}
		}
	}
	return items, nil
}

// ContentPayload is the expected shape of an AI listing copy response.
type ContentPayload struct {
	Content *string `json:"content"`
}

// Content extracts and validates listing copy from raw text.
func Content(raw string) (string, error) {
	var p ContentPayload
	if err := decodeObject(raw, &p); err != nil {
		return "", err
	}
	if p.Content == nil || strings.TrimSpace(*p.Content) == "" {
		return "", fmt.Errorf("%w: missing content", ErrShapeMismatch)
	}
	return *p.Content, nil
}

// decodeObject finds the first balanced object span and unmarshals it.
// A span that is not valid JSON at all is NoStructureFound; a span that parses
// but does not fit the target shape is ShapeMismatch.
func decodeObject(raw string, target interface{}) error {
	span, err := FirstObject(raw)
	if err != nil {
		return err
	}
	if !json.Valid([]byte(span)) {
		return ErrNoStructureFound
	}
	if err := json.Unmarshal([]byte(span), target); err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	return nil
}
