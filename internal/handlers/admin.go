package handlers

import (
	"context"
	"fmt"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/brianmwangi/estatelink-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetPendingListings returns the moderation queue, oldest submission first.
func GetPendingListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var listings []models.Listing
		if err := db.Where("moderation_status = ?", models.ModerationStatusPending).
			Preload("Vendor").
			Order("created_at ASC").
			Find(&listings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch pending listings"})
			return
		}

		c.JSON(200, listings)
	}
}

// ModerateListing approves or rejects a pending listing. Approval makes the
// listing publicly searchable and announces it to topic subscribers; either
// outcome notifies the vendor.
func ModerateListing(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId := c.Param("id")

		var input struct {
			Action string `json:"action" binding:"required,oneof=approve reject"`
			Reason string `json:"reason"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var listing models.Listing
		if err := db.Preload("Vendor").First(&listing, listingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		if listing.ModerationStatus != models.ModerationStatusPending {
			c.JSON(422, gin.H{"error": "Listing has already been moderated"})
			return
		}

		approved := input.Action == "approve"
		if approved {
			listing.ModerationStatus = models.ModerationStatusActive
		} else {
			listing.ModerationStatus = models.ModerationStatusRejected
		}
		listing.ModerationReason = input.Reason

		if err := db.Save(&listing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update listing"})
			return
		}

		title := "Listing rejected"
		message := fmt.Sprintf("Your listing %s was rejected", listing.Title)
		if approved {
			title = "Listing approved"
			message = fmt.Sprintf("Your listing %s is now live", listing.Title)
		}
		if input.Reason != "" {
			message += ": " + input.Reason
		}
		services.Notify(db, hub, listing.VendorID, models.NotificationTypeModeration,
			title, message, fmt.Sprintf("/dashboard/listings/%d", listing.ID))

		go func() {
			var prefs models.NotificationPreference
			if err := db.Where("user_id = ?", listing.VendorID).First(&prefs).Error; err != nil {
				prefs = *models.DefaultPreferences(listing.VendorID)
			}
			if !prefs.AllowsEmail(models.NotificationTypeModeration) {
				return
			}
			if err := utils.SendListingModerationEmail(listing.Vendor.Email, listing.Title, approved); err != nil {
				log.WithError(err).Warn("Failed to send moderation email")
			}
		}()

		if approved {
			ctx := context.Background()
			if err := services.InvalidateFeaturedListings(ctx); err != nil {
				log.WithError(err).Warn("Failed to invalidate featured listings cache")
			}
			if err := services.PublishListingUpdate(ctx, listing.ID, "approved"); err != nil {
				log.WithError(err).Warn("Failed to publish listing update")
			}
			go func() {
				if err := services.SendPushToTopic(context.Background(), "new-listings", services.PushPayload{
					Title: "New property listed",
					Body:  fmt.Sprintf("%s in %s", listing.Title, listing.City),
					Data:  map[string]interface{}{"listingId": listing.ID},
				}); err != nil {
					log.WithError(err).Warn("Failed to push new listing announcement")
				}
			}()
		}

		c.JSON(200, listing)
	}
}

// AdminStats aggregates platform-wide counts for the admin dashboard.
func AdminStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalVendors, totalClients int64
		db.Model(&models.User{}).Count(&totalUsers)
		db.Model(&models.User{}).Where("user_type = ?", models.UserTypeVendor).Count(&totalVendors)
		db.Model(&models.User{}).Where("user_type = ?", models.UserTypeClient).Count(&totalClients)

		var totalListings, pendingListings, activeListings, rejectedListings int64
		db.Model(&models.Listing{}).Count(&totalListings)
		db.Model(&models.Listing{}).Where("moderation_status = ?", models.ModerationStatusPending).Count(&pendingListings)
		db.Model(&models.Listing{}).Where("moderation_status = ?", models.ModerationStatusActive).Count(&activeListings)
		db.Model(&models.Listing{}).Where("moderation_status = ?", models.ModerationStatusRejected).Count(&rejectedListings)

		var totalBookings int64
		db.Model(&models.Booking{}).Count(&totalBookings)

		bookingsByStatus := map[string]int64{}
		for _, status := range []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCompleted,
			models.BookingStatusCancelled,
		} {
			var n int64
			db.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
			bookingsByStatus[string(status)] = n
		}

		c.JSON(200, gin.H{
			"users": gin.H{
				"total":   totalUsers,
				"vendors": totalVendors,
				"clients": totalClients,
			},
			"listings": gin.H{
				"total":    totalListings,
				"pending":  pendingListings,
				"active":   activeListings,
				"rejected": rejectedListings,
			},
			"bookings": gin.H{
				"total":    totalBookings,
				"byStatus": bookingsByStatus,
			},
		})
	}
}
