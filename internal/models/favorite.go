package models

import (
	"time"
)

// Favorite is a user-to-listing bookmark. At most one row exists per
// (user, listing) pair; its presence is the source of truth for whether a
// listing is favorited.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_listing" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_fav_user_listing" json:"listingId"`
	Listing   Listing   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}
