package listings

import (
	"strconv"
	"strings"

	"github.com/brianmwangi/estatelink-backend/internal/models"
)

// FilterAny is the sentinel a dropdown sends when no constraint is wanted.
const FilterAny = "Any"

// Criteria holds the search filters. Every field is optional: zero values and
// the "Any" sentinel never exclude records, and malformed numeric input is
// treated as absent rather than as an error so search stays forgiving.
type Criteria struct {
	PriceMin      float64
	PriceMax      float64 // 0 means no upper bound
	Bedrooms      string  // exact match when numeric, ignored otherwise
	Location      string  // case-insensitive substring against city OR neighborhood
	PropertyType  string
	ListingStatus string
}

// Filter returns the listings matching every active criterion. The input
// slice is never mutated and an empty result is valid.
func Filter(records []models.Listing, c Criteria) []models.Listing {
	matched := make([]models.Listing, 0, len(records))
	for _, listing := range records {
		if matches(listing, c) {
			matched = append(matched, listing)
		}
	}
	return matched
}

func matches(l models.Listing, c Criteria) bool {
	if l.Price < c.PriceMin {
		return false
	}
	if c.PriceMax > 0 && l.Price > c.PriceMax {
		return false
	}

	if bedrooms, err := strconv.Atoi(strings.TrimSpace(c.Bedrooms)); err == nil {
		if l.Bedrooms != bedrooms {
			return false
		}
	}

	if location := strings.TrimSpace(c.Location); criterionActive(location) {
		// A listing matches on either field, not both.
		if !containsFold(l.City, location) && !containsFold(l.Neighborhood, location) {
			return false
		}
	}

	if criterionActive(c.PropertyType) && string(l.PropertyType) != c.PropertyType {
		return false
	}
	if criterionActive(c.ListingStatus) && string(l.ListingStatus) != c.ListingStatus {
		return false
	}

	return true
}

func criterionActive(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && !strings.EqualFold(value, FilterAny)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
