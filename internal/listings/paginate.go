package listings

import (
	"sort"

	"github.com/brianmwangi/estatelink-backend/internal/models"
)

// SortKey selects the ordering applied before pagination.
type SortKey string

const (
	SortNewest    SortKey = "newest" // default, newest first
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortBedrooms  SortKey = "bedrooms" // most bedrooms first
)

// DefaultPageSize matches the search grid.
const DefaultPageSize = 9

// Page is one window of a sorted result set.
type Page struct {
	Listings   []models.Listing `json:"listings"`
	TotalCount int              `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
}

// Paginate sorts records by key and slices out the 1-indexed page. The sort is
// stable so ties keep their input order. Page numbers past the last page yield
// an empty page rather than an error.
func Paginate(records []models.Listing, key SortKey, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	sorted := make([]models.Listing, len(records))
	copy(sorted, records)

	switch key {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortBedrooms:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Bedrooms > sorted[j].Bedrooms
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Page{Listings: []models.Listing{}, TotalCount: total, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{Listings: sorted[start:end], TotalCount: total, TotalPages: totalPages}
}
