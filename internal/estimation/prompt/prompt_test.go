package prompt

import (
	"strings"
	"testing"

	"estimation_backend/internal/estimation/domain"
)

func intPtr(v int) *int { return &v }

func sampleRequest() domain.ValuationRequest {
	return domain.ValuationRequest{
		Location:     "Austin",
		Area:         1250.5,
		PropertyType: domain.PropertyVilla,
		Bedrooms:     intPtr(4),
		Bathrooms:    intPtr(3),
		YearBuilt:    intPtr(2015),
		Amenities:    []string{"pool", "garage", "garden"},
	}
}

func sampleLead() domain.LeadProfile {
	return domain.LeadProfile{
		Name:               "Dana",
		Email:              "dana@example.com",
		BudgetMin:          200_000,
		BudgetMax:          450_000,
		Bedrooms:           intPtr(3),
		PreferredTypes:     []string{"villa", "apartment"},
		PreferredLocations: []string{"Austin", "Dallas"},
		Urgency:            domain.UrgencyHigh,
		Source:             domain.SourceReferral,
	}
}

func TestValuationDeterministic(t *testing.T) {
	req := sampleRequest()
	inst1, data1 := Valuation(req)
	inst2, data2 := Valuation(req)
	if inst1 != inst2 || data1 != data2 {
		t.Fatalf("identical requests produced different prompts")
	}
}

func TestValuationRendersOnlyDeclaredFields(t *testing.T) {
	_, data := Valuation(sampleRequest())

	for _, want := range []string{
		"location: Austin",
		"area_sqft: 1250.5",
		"property_type: villa",
		"bedrooms: 4",
		"bathrooms: 3",
		"year_built: 2015",
		"amenities: garage, garden, pool",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("data block missing %q:\n%s", want, data)
		}
	}
}

func TestValuationOmitsAbsentFields(t *testing.T) {
	req := domain.ValuationRequest{Location: "Austin", Area: 900, PropertyType: domain.PropertyStudio}
	_, data := Valuation(req)

	for _, forbidden := range []string{"bedrooms", "bathrooms", "year_built", "amenities"} {
		if strings.Contains(data, forbidden) {
			t.Errorf("data block renders absent field %q:\n%s", forbidden, data)
		}
	}
}

func TestValuationDoesNotMutateAmenities(t *testing.T) {
	req := sampleRequest()
	Valuation(req)
	if req.Amenities[0] != "pool" || req.Amenities[2] != "garden" {
		t.Fatalf("amenities slice was reordered: %v", req.Amenities)
	}
}

func TestLeadScorePrompt(t *testing.T) {
	inst, data := LeadScore(sampleLead())

	if !strings.Contains(inst, "nextActions") {
		t.Errorf("instruction does not describe the expected shape:\n%s", inst)
	}
	for _, want := range []string{
		"name: Dana",
		"email: dana@example.com",
		"budget_usd: 200000 - 450000",
		"preferred_bedrooms: 3",
		"preferred_types: apartment, villa",
		"preferred_locations: Austin, Dallas",
		"urgency: high",
		"source: referral",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("data block missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(data, "phone") {
		t.Errorf("data block renders empty phone field:\n%s", data)
	}
}

func TestMatchPrompt(t *testing.T) {
	candidates := []domain.MatchCandidate{
		{ID: "c-1", Price: 300_000, PropertyType: domain.PropertyApartment, Location: "Austin, TX", Bedrooms: intPtr(3)},
		{ID: "c-2", Price: 420_000, PropertyType: domain.PropertyVilla, Location: "Dallas, TX"},
	}
	inst, data := Match(sampleLead(), candidates, 5)

	if !strings.Contains(inst, "at most the best 5") {
		t.Errorf("instruction missing the limit:\n%s", inst)
	}
	for _, want := range []string{
		"id: c-1 | price: 300000 | type: apartment | location: Austin, TX | bedrooms: 3",
		"id: c-2 | price: 420000 | type: villa | location: Dallas, TX",
	} {
		if !strings.Contains(data, want) {
			t.Errorf("data block missing %q:\n%s", want, data)
		}
	}
}

func TestListingCopyPrompt(t *testing.T) {
	inst, data := ListingCopy(sampleRequest())
	if !strings.Contains(inst, `{"content": "string"}`) {
		t.Errorf("instruction does not pin the content shape:\n%s", inst)
	}
	if !strings.Contains(data, "location: Austin") {
		t.Errorf("data block missing property details:\n%s", data)
	}
}
