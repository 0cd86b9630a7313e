package extract

import (
	"errors"
	"testing"
)

func TestFirstObjectIgnoresSurroundingProse(t *testing.T) {
	raw := `Sure! Here is the result you asked for:
{"estimatedValue": 420000, "summary": "solid {downtown} pick"}
Let me know if you need anything else.`

	span, err := FirstObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"estimatedValue": 420000, "summary": "solid {downtown} pick"}`
	if span != want {
		t.Fatalf("span = %q, want %q", span, want)
	}
}

func TestFirstObjectBracesInsideStrings(t *testing.T) {
	raw := `{"summary": "a \"quoted\" remark with } inside", "estimatedValue": 1}`
	span, err := FirstObject(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span != raw {
		t.Fatalf("span = %q, want full input", span)
	}
}

func TestFirstObjectNoStructure(t *testing.T) {
	for _, raw := range []string{
		"no json here at all",
		`{"unbalanced": true`,
		"",
	} {
		if _, err := FirstObject(raw); !errors.Is(err, ErrNoStructureFound) {
			t.Errorf("FirstObject(%q) err = %v, want ErrNoStructureFound", raw, err)
		}
	}
}

func TestFirstArrayIgnoresProse(t *testing.T) {
	raw := `Ranked matches below: [{"candidateId": "c-1"}, {"candidateId": "c-2"}] done.`
	span, err := FirstArray(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"candidateId": "c-1"}, {"candidateId": "c-2"}]`
	if span != want {
		t.Fatalf("span = %q, want %q", span, want)
	}
}

func TestValuation(t *testing.T) {
	raw := `Here is my assessment:
{"estimatedValue": 385000, "confidence": 0.82, "factorWeights": {"location": 0.4},
 "comparables": [{"label": "nearby sale", "price": 370000, "similarity": 0.9, "distance": 0.5}],
 "summary": "Well positioned mid-market property."}`

	p, err := Valuation(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.EstimatedValue != 385000 || *p.Confidence != 0.82 {
		t.Fatalf("payload = %+v", p)
	}
	if len(p.Comparables) != 1 || p.Comparables[0].Label != "nearby sale" {
		t.Fatalf("comparables = %+v", p.Comparables)
	}
}

func TestValuationErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no payload", "I could not produce a result.", ErrNoStructureFound},
		{"invalid json span", `{not: valid}`, ErrNoStructureFound},
		{"string value", `{"estimatedValue": "a lot", "confidence": 0.8, "summary": "x"}`, ErrShapeMismatch},
		{"missing summary", `{"estimatedValue": 100, "confidence": 0.8}`, ErrShapeMismatch},
		{"missing confidence", `{"estimatedValue": 100, "summary": "x"}`, ErrShapeMismatch},
		{"negative value", `{"estimatedValue": -5, "confidence": 0.8, "summary": "x"}`, ErrOutOfRangeValue},
		{"confidence above one", `{"estimatedValue": 100, "confidence": 1.5, "summary": "x"}`, ErrOutOfRangeValue},
		{"weight out of range", `{"estimatedValue": 100, "confidence": 0.8, "factorWeights": {"location": 2}, "summary": "x"}`, ErrOutOfRangeValue},
		{"bad comparable", `{"estimatedValue": 100, "confidence": 0.8, "comparables": [{"label": "x", "price": -1, "similarity": 0.5, "distance": 0}], "summary": "x"}`, ErrOutOfRangeValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Valuation(tc.raw); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLeadScore(t *testing.T) {
	raw := `{"score": 72, "factorScores": {"budget": 0.75}, "recommendation": "Follow up soon.", "nextActions": ["Call this week"]}`
	p, err := LeadScore(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *p.Score != 72 || *p.Recommendation != "Follow up soon." {
		t.Fatalf("payload = %+v", p)
	}
}

func TestLeadScoreErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"missing score", `{"recommendation": "x", "nextActions": ["a"]}`, ErrShapeMismatch},
		{"empty nextActions", `{"score": 50, "recommendation": "x", "nextActions": []}`, ErrShapeMismatch},
		{"score above 100", `{"score": 120, "recommendation": "x", "nextActions": ["a"]}`, ErrOutOfRangeValue},
		{"factor out of range", `{"score": 50, "factorScores": {"budget": -0.1}, "recommendation": "x", "nextActions": ["a"]}`, ErrOutOfRangeValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LeadScore(tc.raw); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	raw := `Top picks:
[{"candidateId": "c-2", "matchScore": 91, "reasons": ["in budget"], "priceAlignment": 0.95, "locationMatch": 1, "featureMatch": 1},
 {"candidateId": "c-7", "matchScore": 64, "reasons": [], "priceAlignment": 0.6, "locationMatch": 0.3, "featureMatch": 1}]`

	items, err := Matches(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || *items[0].CandidateID != "c-2" || *items[1].MatchScore != 64 {
		t.Fatalf("items = %+v", items)
	}
}

func TestMatchesErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"no array", `{"candidateId": "c-1"}`, ErrNoStructureFound},
		{"missing candidateId", `[{"matchScore": 50, "priceAlignment": 0.5, "locationMatch": 0.5, "featureMatch": 0.5}]`, ErrShapeMismatch},
		{"missing sub-score", `[{"candidateId": "c-1", "matchScore": 50, "priceAlignment": 0.5, "locationMatch": 0.5}]`, ErrShapeMismatch},
		{"score out of range", `[{"candidateId": "c-1", "matchScore": 150, "priceAlignment": 0.5, "locationMatch": 0.5, "featureMatch": 0.5}]`, ErrOutOfRangeValue},
		{"alignment out of range", `[{"candidateId": "c-1", "matchScore": 50, "priceAlignment": 1.5, "locationMatch": 0.5, "featureMatch": 0.5}]`, ErrOutOfRangeValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Matches(tc.raw); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestContent(t *testing.T) {
	content, err := Content(`Here you go: {"content": "A bright two-bedroom apartment."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "A bright two-bedroom apartment." {
		t.Fatalf("content = %q", content)
	}

	if _, err := Content(`{"content": "   "}`); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("blank content err = %v, want ErrShapeMismatch", err)
	}
	if _, err := Content(`{}`); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("missing content err = %v, want ErrShapeMismatch", err)
	}
}
