package handlers

import (
	"time"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type monthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// GetVendorStats aggregates the vendor dashboard numbers: listing counts by
// moderation status, booking counts by status, total favorites and views
// across the vendor's listings, and a six month booking trend.
func GetVendorStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		listingsByStatus := map[string]int64{}
		for _, status := range []models.ModerationStatus{
			models.ModerationStatusPending,
			models.ModerationStatusActive,
			models.ModerationStatusRejected,
		} {
			var n int64
			db.Model(&models.Listing{}).
				Where("vendor_id = ? AND moderation_status = ?", userId, status).
				Count(&n)
			listingsByStatus[string(status)] = n
		}

		bookingsByStatus := map[string]int64{}
		for _, status := range []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCompleted,
			models.BookingStatusCancelled,
		} {
			var n int64
			db.Model(&models.Booking{}).
				Where("vendor_id = ? AND status = ?", userId, status).
				Count(&n)
			bookingsByStatus[string(status)] = n
		}

		type totals struct {
			Favorites int64
			Views     int64
		}
		var t totals
		db.Model(&models.Listing{}).
			Where("vendor_id = ?", userId).
			Select("COALESCE(SUM(favorites_count), 0) AS favorites, COALESCE(SUM(views), 0) AS views").
			Scan(&t)

		// Bookings per calendar month over the last six months, oldest first
		now := time.Now()
		monthly := make([]monthlyCount, 0, 6)
		for i := 5; i >= 0; i-- {
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, -i, 0)
			end := start.AddDate(0, 1, 0)

			var n int64
			db.Model(&models.Booking{}).
				Where("vendor_id = ? AND created_at >= ? AND created_at < ?", userId, start, end).
				Count(&n)
			monthly = append(monthly, monthlyCount{Month: start.Format("Jan 2006"), Count: n})
		}

		c.JSON(200, gin.H{
			"listings":        listingsByStatus,
			"bookings":        bookingsByStatus,
			"totalFavorites":  t.Favorites,
			"totalViews":      t.Views,
			"monthlyBookings": monthly,
		})
	}
}
