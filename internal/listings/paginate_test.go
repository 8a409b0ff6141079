package listings

import (
	"reflect"
	"testing"
	"time"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"gorm.io/gorm"
)

func listingAt(title string, price float64, bedrooms int, created time.Time) models.Listing {
	return models.Listing{
		Model:    gorm.Model{CreatedAt: created},
		Title:    title,
		Price:    price,
		Bedrooms: bedrooms,
	}
}

func TestPaginateSortByPrice(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.Listing{
		listingAt("a", 500, 1, base),
		listingAt("b", 100, 2, base.Add(time.Hour)),
		listingAt("c", 300, 3, base.Add(2*time.Hour)),
	}

	asc := Paginate(records, SortPriceAsc, 10, 1)
	if got, want := titles(asc.Listings), []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("price asc: got %v, want %v", got, want)
	}

	desc := Paginate(records, SortPriceDesc, 10, 1)
	if got, want := titles(desc.Listings), []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("price desc: got %v, want %v", got, want)
	}
}

func TestPaginateSortIsStableForEqualKeys(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.Listing{
		listingAt("first", 200, 2, base),
		listingAt("second", 200, 2, base),
		listingAt("third", 200, 2, base),
	}

	page := Paginate(records, SortPriceAsc, 10, 1)
	if got, want := titles(page.Listings), []string{"first", "second", "third"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("equal keys reordered: got %v", got)
	}
}

func TestPaginateNewestFirstIsDefault(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.Listing{
		listingAt("old", 100, 1, base),
		listingAt("new", 100, 1, base.Add(48*time.Hour)),
		listingAt("mid", 100, 1, base.Add(24*time.Hour)),
	}

	page := Paginate(records, SortNewest, 10, 1)
	if got, want := titles(page.Listings), []string{"new", "mid", "old"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("newest sort: got %v, want %v", got, want)
	}
}

func TestPaginateBedroomsDescending(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.Listing{
		listingAt("two", 100, 2, base),
		listingAt("five", 100, 5, base),
		listingAt("three", 100, 3, base),
	}

	page := Paginate(records, SortBedrooms, 10, 1)
	if got, want := titles(page.Listings), []string{"five", "three", "two"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("bedrooms sort: got %v, want %v", got, want)
	}
}

func TestPaginatePagesCoverAllRecordsInOrder(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	var records []models.Listing
	for i := 0; i < 7; i++ {
		records = append(records, listingAt(string(rune('a'+i)), float64(i*100), i, base.Add(time.Duration(i)*time.Hour)))
	}

	const pageSize = 3
	first := Paginate(records, SortPriceAsc, pageSize, 1)
	if first.TotalCount != 7 || first.TotalPages != 3 {
		t.Fatalf("totals: count=%d pages=%d", first.TotalCount, first.TotalPages)
	}

	var all []string
	for p := 1; p <= first.TotalPages; p++ {
		page := Paginate(records, SortPriceAsc, pageSize, p)
		all = append(all, titles(page.Listings)...)
	}
	if len(all) != len(records) {
		t.Fatalf("pages cover %d records, want %d", len(all), len(records))
	}

	full := Paginate(records, SortPriceAsc, len(records), 1)
	if !reflect.DeepEqual(all, titles(full.Listings)) {
		t.Fatalf("concatenated pages %v differ from full sorted list %v", all, titles(full.Listings))
	}
}

func TestPaginateOutOfRangePageIsEmpty(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []models.Listing{
		listingAt("a", 100, 1, base),
		listingAt("b", 200, 2, base),
	}

	page := Paginate(records, SortPriceAsc, 2, 5)
	if len(page.Listings) != 0 {
		t.Fatalf("expected empty page, got %v", titles(page.Listings))
	}
	if page.TotalCount != 2 || page.TotalPages != 1 {
		t.Fatalf("totals preserved on out-of-range page: count=%d pages=%d", page.TotalCount, page.TotalPages)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	page := Paginate(nil, SortNewest, 10, 1)
	if len(page.Listings) != 0 || page.TotalCount != 0 || page.TotalPages != 0 {
		t.Fatalf("empty input: %+v", page)
	}
}
