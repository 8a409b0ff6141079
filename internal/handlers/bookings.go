package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/brianmwangi/estatelink-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const bookingDateLayout = "2006-01-02"

// CreateBooking handles a client requesting a property viewing.
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			ListingID uint   `json:"listingId" binding:"required"`
			Date      string `json:"date" binding:"required"`
			TimeSlot  string `json:"timeSlot" binding:"required"`
			Notes     string `json:"notes"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var listing models.Listing
		if err := db.Where("moderation_status = ?", models.ModerationStatusActive).
			First(&listing, input.ListingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		if listing.VendorID == userId {
			c.JSON(400, gin.H{"error": "You cannot book a viewing of your own listing"})
			return
		}

		date, err := time.Parse(bookingDateLayout, input.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "Date must be in YYYY-MM-DD format"})
			return
		}
		if !models.ValidTimeSlot(input.TimeSlot) {
			c.JSON(422, gin.H{"error": fmt.Sprintf("Unknown time slot %q", input.TimeSlot)})
			return
		}
		if err := models.ValidateViewingDate(date); err != nil {
			c.JSON(422, gin.H{"error": err.Error()})
			return
		}

		booking := models.Booking{
			UserID:    userId,
			VendorID:  listing.VendorID,
			ListingID: listing.ID,
			Date:      date,
			TimeSlot:  input.TimeSlot,
			Status:    models.BookingStatusPending,
			Notes:     input.Notes,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		// Tell the vendor. Delivery is best-effort and must not fail the booking.
		services.Notify(db, hub, listing.VendorID, models.NotificationTypeBooking,
			"New viewing request",
			fmt.Sprintf("New viewing request for %s on %s at %s", listing.Title, date.Format("Mon, 2 Jan"), input.TimeSlot),
			fmt.Sprintf("/dashboard/bookings/%d", booking.ID))
		go notifyVendorOfRequest(db, userId, listing, date, input.TimeSlot)

		c.JSON(201, booking)
	}
}

func notifyVendorOfRequest(db *gorm.DB, clientId uint, listing models.Listing, date time.Time, timeSlot string) {
	var client, vendor models.User
	if err := db.First(&client, clientId).Error; err != nil {
		return
	}
	if err := db.First(&vendor, listing.VendorID).Error; err != nil {
		return
	}

	var prefs models.NotificationPreference
	if err := db.Where("user_id = ?", vendor.ID).First(&prefs).Error; err != nil {
		prefs = *models.DefaultPreferences(vendor.ID)
	}

	if prefs.AllowsEmail(models.NotificationTypeBooking) {
		if err := utils.SendBookingRequestEmail(vendor.Email, listing.Title, client.Username, date, timeSlot); err != nil {
			log.WithError(err).Warn("Failed to send booking request email")
		}
	}
	if prefs.AllowsSMS(models.NotificationTypeBooking) && vendor.PhoneNumber != "" {
		if err := utils.SendBookingRequestSMS(vendor.PhoneNumber, listing.Title, client.Username); err != nil {
			log.WithError(err).Warn("Failed to send booking request SMS")
		}
	}
}

// GetClientBookings retrieves all bookings made by the caller
func GetClientBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("user_id = ?", userId).
			Preload("Listing").
			Preload("Vendor").
			Order("date ASC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetVendorBookings retrieves all bookings against the vendor's listings
func GetVendorBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("vendor_id = ?", userId).
			Preload("Listing").
			Preload("User").
			Order("date ASC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// UpdateBookingStatus applies a lifecycle action to a booking. Vendors may
// confirm, decline and complete; cancellation is open to both sides of the
// booking. The transition table decides what is legal, nothing is saved on a
// rejected action.
func UpdateBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Action string `json:"action" binding:"required,oneof=confirm decline complete cancel"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Listing").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		action := models.BookingAction(input.Action)
		switch action {
		case models.BookingActionCancel:
			if booking.UserID != userId && booking.VendorID != userId {
				c.JSON(403, gin.H{"error": "Unauthorized"})
				return
			}
		default:
			if booking.VendorID != userId {
				c.JSON(403, gin.H{"error": "Unauthorized"})
				return
			}
		}

		if err := booking.Transition(action); err != nil {
			if errors.Is(err, models.ErrInvalidTransition) {
				c.JSON(422, gin.H{"error": err.Error()})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking status"})
			return
		}

		// Whoever did not act gets told about it
		notifyTarget := booking.UserID
		if userId == booking.UserID {
			notifyTarget = booking.VendorID
		}
		services.Notify(db, hub, notifyTarget, models.NotificationTypeBooking,
			"Viewing "+string(booking.Status),
			fmt.Sprintf("Your viewing of %s is now %s", booking.Listing.Title, booking.Status),
			fmt.Sprintf("/bookings/%d", booking.ID))
		go notifyClientOfStatus(db, booking)

		c.JSON(200, booking)
	}
}

func notifyClientOfStatus(db *gorm.DB, booking models.Booking) {
	var client models.User
	if err := db.First(&client, booking.UserID).Error; err != nil {
		return
	}

	var prefs models.NotificationPreference
	if err := db.Where("user_id = ?", client.ID).First(&prefs).Error; err != nil {
		prefs = *models.DefaultPreferences(client.ID)
	}

	if prefs.AllowsEmail(models.NotificationTypeBooking) {
		if err := utils.SendBookingStatusEmail(client.Email, booking.Listing.Title, string(booking.Status), booking.Date, booking.TimeSlot); err != nil {
			log.WithError(err).Warn("Failed to send booking status email")
		}
	}
	if prefs.AllowsSMS(models.NotificationTypeBooking) && client.PhoneNumber != "" {
		if err := utils.SendBookingStatusSMS(client.PhoneNumber, booking.Listing.Title, string(booking.Status)); err != nil {
			log.WithError(err).Warn("Failed to send booking status SMS")
		}
	}
}

// RescheduleBooking moves a viewing to a new date and time slot. Only the
// client who made the booking may reschedule, and the booking drops back to
// pending for the vendor to re-confirm.
func RescheduleBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Date     string `json:"date" binding:"required"`
			TimeSlot string `json:"timeSlot" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.Preload("Listing").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		date, err := time.Parse(bookingDateLayout, input.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "Date must be in YYYY-MM-DD format"})
			return
		}

		if err := booking.Reschedule(date, input.TimeSlot); err != nil {
			if errors.Is(err, models.ErrInvalidSchedule) || errors.Is(err, models.ErrInvalidTransition) {
				c.JSON(422, gin.H{"error": err.Error()})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to reschedule booking"})
			return
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to reschedule booking"})
			return
		}

		services.Notify(db, hub, booking.VendorID, models.NotificationTypeBooking,
			"Viewing rescheduled",
			fmt.Sprintf("The viewing of %s was moved to %s at %s and needs your confirmation",
				booking.Listing.Title, date.Format("Mon, 2 Jan"), booking.TimeSlot),
			fmt.Sprintf("/dashboard/bookings/%d", booking.ID))

		c.JSON(200, booking)
	}
}

// GetTimeSlots returns the bookable viewing slots for clients to pick from.
func GetTimeSlots() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"timeSlots": models.ViewingTimeSlots})
	}
}
