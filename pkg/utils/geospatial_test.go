package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// Nairobi CBD to Westlands is roughly 4 km.
	d := HaversineDistance(-1.2864, 36.8172, -1.2672, 36.8030)
	if d < 2 || d > 7 {
		t.Fatalf("Nairobi CBD to Westlands: got %.2f km", d)
	}

	if d := HaversineDistance(-1.2864, 36.8172, -1.2864, 36.8172); d != 0 {
		t.Fatalf("zero distance expected, got %f", d)
	}
}

func TestIsWithinRadius(t *testing.T) {
	if !IsWithinRadius(-1.2864, 36.8172, -1.2672, 36.8030, 10) {
		t.Fatal("Westlands should be within 10 km of the CBD")
	}
	if IsWithinRadius(-1.2864, 36.8172, -4.0435, 39.6682, 10) {
		t.Fatal("Mombasa should not be within 10 km of Nairobi")
	}
}

func TestGetBoundingBox(t *testing.T) {
	bbox := GetBoundingBox(-1.2864, 36.8172, 5)

	if bbox.NorthEast.Lat <= bbox.SouthWest.Lat || bbox.NorthEast.Lng <= bbox.SouthWest.Lng {
		t.Fatalf("degenerate bounding box: %+v", bbox)
	}

	// The box must contain its own center and be roughly 10 km across.
	if -1.2864 < bbox.SouthWest.Lat || -1.2864 > bbox.NorthEast.Lat {
		t.Fatalf("center latitude outside box: %+v", bbox)
	}
	height := HaversineDistance(bbox.SouthWest.Lat, 36.8172, bbox.NorthEast.Lat, 36.8172)
	if math.Abs(height-10) > 1 {
		t.Fatalf("box height %.2f km, want ~10", height)
	}
}
