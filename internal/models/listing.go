package models

import (
	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeCondo      PropertyType = "Condo"
	PropertyTypeTownhouse  PropertyType = "Townhouse"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypeLand       PropertyType = "Land"
	PropertyTypeCommercial PropertyType = "Commercial"
)

type ListingStatus string

const (
	ListingStatusForSale ListingStatus = "For Sale"
	ListingStatusForRent ListingStatus = "For Rent"
)

// ModerationStatus gates listing visibility. New vendor submissions start
// pending and only become searchable once an admin approves them.
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusActive   ModerationStatus = "active"
	ModerationStatusRejected ModerationStatus = "rejected"
)

type Listing struct {
	gorm.Model
	VendorID         uint             `json:"vendorId" gorm:"not null;index"`
	Vendor           User             `json:"vendor"`
	Title            string           `json:"title" gorm:"not null"`
	Description      string           `json:"description"`
	Price            float64          `json:"price" gorm:"not null"`
	Bedrooms         int              `json:"bedrooms"`
	Bathrooms        int              `json:"bathrooms"`
	Area             float64          `json:"area"`
	City             string           `json:"city" gorm:"not null"`
	Neighborhood     string           `json:"neighborhood" gorm:"column:neighborhood"`
	Latitude         float64          `json:"latitude"`
	Longitude        float64          `json:"longitude"`
	PropertyType     PropertyType     `json:"propertyType" gorm:"not null"`
	ListingStatus    ListingStatus    `json:"listingStatus" gorm:"not null"`
	ModerationStatus ModerationStatus `json:"moderationStatus" gorm:"not null;default:'pending';index"`
	ModerationReason string           `json:"moderationReason,omitempty"`
	// FavoritesCount mirrors the number of favorites rows for this listing.
	// It is only ever changed in the same transaction as the favorites row.
	FavoritesCount int      `json:"favoritesCount" gorm:"not null;default:0"`
	Views          int      `json:"views" gorm:"not null;default:0"`
	ImageURLs      []string `json:"imageUrls" gorm:"serializer:json"`
}

// TableName specifies the table name
func (Listing) TableName() string {
	return "listings"
}

// ValidPropertyType reports whether t is one of the supported property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCondo,
		PropertyTypeTownhouse, PropertyTypeVilla, PropertyTypeLand,
		PropertyTypeCommercial:
		return true
	}
	return false
}

// ValidListingStatus reports whether s is a supported listing status.
func ValidListingStatus(s ListingStatus) bool {
	return s == ListingStatusForSale || s == ListingStatusForRent
}
