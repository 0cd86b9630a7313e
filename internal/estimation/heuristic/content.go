package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"estimation_backend/internal/estimation/domain"
)

// ListingCopy renders a templated property description. The template reads
// flat next to AI-written copy, but the fallback contract only promises a
// usable, factual description.
func (e *Estimator) ListingCopy(req domain.ValuationRequest) domain.ContentResult {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s in %s offering %.0f sqft of space.",
		articleFor(req.PropertyType), req.PropertyType, req.Location, req.Area)
	if req.Bedrooms != nil && req.Bathrooms != nil {
		fmt.Fprintf(&b, " Features %d bedrooms and %d bathrooms.", *req.Bedrooms, *req.Bathrooms)
	} else if req.Bedrooms != nil {
		fmt.Fprintf(&b, " Features %d bedrooms.", *req.Bedrooms)
	}
	if req.YearBuilt != nil {
		fmt.Fprintf(&b, " Built in %d.", *req.YearBuilt)
	}
	if len(req.Amenities) > 0 {
		amenities := make([]string, len(req.Amenities))
		copy(amenities, req.Amenities)
		sort.Strings(amenities)
		fmt.Fprintf(&b, " Amenities include %s.", strings.Join(amenities, ", "))
	}

	return domain.ContentResult{
		Content:   b.String(),
		SourceTag: domain.SourceHeuristic,
	}
}

func articleFor(t domain.PropertyType) string {
	switch t {
	case domain.PropertyApartment:
		return "An"
	default:
		return "A"
	}
}
