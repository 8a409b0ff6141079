package handlers

import (
	"errors"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ToggleFavorite flips the (user, listing) favorite relation. The relation
// row and the listing's favorites counter are written in one transaction so
// the counter can never drift from the number of rows, even under concurrent
// double-clicks; the unique index makes the duplicate insert lose.
func ToggleFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		listingId := c.Param("id")

		var listing models.Listing
		if err := db.First(&listing, listingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		var isFavorite bool
		err := db.Transaction(func(tx *gorm.DB) error {
			var favorite models.Favorite
			err := tx.Where("user_id = ? AND listing_id = ?", userId, listing.ID).
				First(&favorite).Error

			switch {
			case err == nil:
				// Un-favorite: drop the row, decrement floored at zero
				if err := tx.Delete(&favorite).Error; err != nil {
					return err
				}
				result := tx.Model(&models.Listing{}).
					Where("id = ?", listing.ID).
					UpdateColumn("favorites_count", gorm.Expr("GREATEST(favorites_count - 1, 0)"))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					log.WithField("listingId", listing.ID).Warn("Favorite counter update skipped, listing gone")
				}
				isFavorite = false

			case errors.Is(err, gorm.ErrRecordNotFound):
				favorite = models.Favorite{UserID: userId, ListingID: listing.ID}
				if err := tx.Create(&favorite).Error; err != nil {
					return err
				}
				result := tx.Model(&models.Listing{}).
					Where("id = ?", listing.ID).
					UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1"))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					log.WithField("listingId", listing.ID).Warn("Favorite counter update skipped, listing gone")
				}
				isFavorite = true

			default:
				return err
			}

			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update favorite"})
			return
		}

		var count int
		if err := db.Model(&models.Listing{}).
			Where("id = ?", listing.ID).
			Select("favorites_count").
			Scan(&count).Error; err != nil {
			count = listing.FavoritesCount
		}

		c.JSON(200, gin.H{
			"isFavorite":     isFavorite,
			"favoritesCount": count,
		})
	}
}

// GetUserFavorites lists the caller's favorited listings, newest first.
func GetUserFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var favorites []models.Favorite
		if err := db.Where("user_id = ?", userId).
			Preload("Listing").
			Order("created_at DESC").
			Find(&favorites).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch favorites"})
			return
		}

		c.JSON(200, favorites)
	}
}
