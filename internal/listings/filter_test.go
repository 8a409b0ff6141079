package listings

import (
	"reflect"
	"testing"

	"github.com/brianmwangi/estatelink-backend/internal/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{
			Title:         "Westlands apartment",
			Price:         500,
			Bedrooms:      2,
			City:          "Nairobi",
			Neighborhood:  "Westlands",
			PropertyType:  models.PropertyTypeApartment,
			ListingStatus: models.ListingStatusForRent,
		},
		{
			Title:         "Karen house",
			Price:         100,
			Bedrooms:      4,
			City:          "Nairobi",
			Neighborhood:  "Karen",
			PropertyType:  models.PropertyTypeHouse,
			ListingStatus: models.ListingStatusForSale,
		},
		{
			Title:         "Nyali villa",
			Price:         300,
			Bedrooms:      2,
			City:          "Mombasa",
			Neighborhood:  "Nyali",
			PropertyType:  models.PropertyTypeVilla,
			ListingStatus: models.ListingStatusForSale,
		},
	}
}

func titles(records []models.Listing) []string {
	out := make([]string, 0, len(records))
	for _, l := range records {
		out = append(out, l.Title)
	}
	return out
}

func TestFilterEmptyCriteriaKeepsEverything(t *testing.T) {
	records := sampleListings()
	got := Filter(records, Criteria{})
	if len(got) != len(records) {
		t.Fatalf("expected %d listings, got %d", len(records), len(got))
	}
}

func TestFilterPriceBoundsInclusive(t *testing.T) {
	records := sampleListings()

	got := Filter(records, Criteria{PriceMin: 100, PriceMax: 300})
	want := []string{"Karen house", "Nyali villa"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("price filter: got %v, want %v", titles(got), want)
	}

	// Exact boundary values are kept.
	got = Filter(records, Criteria{PriceMin: 500, PriceMax: 500})
	if len(got) != 1 || got[0].Title != "Westlands apartment" {
		t.Fatalf("boundary filter: got %v", titles(got))
	}
}

func TestFilterBedrooms(t *testing.T) {
	records := sampleListings()

	got := Filter(records, Criteria{Bedrooms: "4"})
	if len(got) != 1 || got[0].Title != "Karen house" {
		t.Fatalf("bedrooms filter: got %v", titles(got))
	}

	// Non-numeric input is ignored, not an error.
	got = Filter(records, Criteria{Bedrooms: "studio"})
	if len(got) != len(records) {
		t.Fatalf("non-numeric bedrooms should be ignored, got %v", titles(got))
	}
}

func TestFilterLocationMatchesEitherField(t *testing.T) {
	records := sampleListings()

	cases := []struct {
		location string
		want     []string
	}{
		{"West", []string{"Westlands apartment"}},
		{"Nair", []string{"Westlands apartment", "Karen house"}},
		{"nairobi", []string{"Westlands apartment", "Karen house"}},
		{"Kisumu", []string{}},
		{"Any", []string{"Westlands apartment", "Karen house", "Nyali villa"}},
		{"  ", []string{"Westlands apartment", "Karen house", "Nyali villa"}},
	}

	for _, tc := range cases {
		got := titles(Filter(records, Criteria{Location: tc.location}))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("location %q: got %v, want %v", tc.location, got, tc.want)
		}
	}
}

func TestFilterSentinels(t *testing.T) {
	records := sampleListings()

	if got := Filter(records, Criteria{PropertyType: FilterAny, ListingStatus: FilterAny}); len(got) != len(records) {
		t.Fatalf("Any sentinel should not filter, got %v", titles(got))
	}

	got := Filter(records, Criteria{PropertyType: "Villa"})
	if len(got) != 1 || got[0].Title != "Nyali villa" {
		t.Fatalf("property type filter: got %v", titles(got))
	}

	got = Filter(records, Criteria{ListingStatus: "For Sale"})
	want := []string{"Karen house", "Nyali villa"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("listing status filter: got %v, want %v", titles(got), want)
	}
}

func TestFilterCombinesCriteriaWithAnd(t *testing.T) {
	records := sampleListings()

	got := Filter(records, Criteria{
		Location:      "Nairobi",
		ListingStatus: "For Sale",
		Bedrooms:      "4",
	})
	if len(got) != 1 || got[0].Title != "Karen house" {
		t.Fatalf("combined filter: got %v", titles(got))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	records := sampleListings()
	c := Criteria{Location: "Nairobi", PriceMax: 400}

	once := Filter(records, c)
	twice := Filter(once, c)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", titles(once), titles(twice))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := sampleListings()
	before := titles(records)
	Filter(records, Criteria{Location: "West"})
	if !reflect.DeepEqual(titles(records), before) {
		t.Fatal("input slice was reordered")
	}
}
