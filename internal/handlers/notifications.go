package handlers

import (
	"context"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetNotifications lists the caller's notifications, newest first, with an
// unread count for the badge.
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var notifications []models.Notification
		if err := db.Where("user_id = ?", userId).
			Order("created_at DESC").
			Limit(50).
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		var unread int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND read = ?", userId, false).
			Count(&unread)

		c.JSON(200, gin.H{
			"notifications": notifications,
			"unreadCount":   unread,
		})
	}
}

// MarkNotificationRead marks a single notification as read.
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		notificationId := c.Param("id")

		result := db.Model(&models.Notification{}).
			Where("id = ? AND user_id = ?", notificationId, userId).
			Update("read", true)
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to update notification"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}

		c.JSON(200, gin.H{"message": "Notification marked as read"})
	}
}

// MarkAllNotificationsRead clears the caller's unread badge in one shot.
func MarkAllNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND read = ?", userId, false).
			Update("read", true).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update notifications"})
			return
		}

		c.JSON(200, gin.H{"message": "All notifications marked as read"})
	}
}

// RegisterFCMToken stores the device's push token and subscribes it to the
// new listing topic when the user wants those alerts.
func RegisterFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Token string `json:"token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.User{}).
			Where("id = ?", userId).
			Update("fcm_token", input.Token).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save token"})
			return
		}

		var prefs models.NotificationPreference
		if err := db.Where("user_id = ?", userId).First(&prefs).Error; err != nil {
			prefs = *models.DefaultPreferences(userId)
		}
		if prefs.NewListingAlerts {
			go func(token string) {
				if err := services.SubscribeToTopic(context.Background(), []string{token}, "new-listings"); err != nil {
					log.WithError(err).Warn("Failed to subscribe token to new-listings topic")
				}
			}(input.Token)
		}

		c.JSON(200, gin.H{"message": "Token registered"})
	}
}

// RemoveFCMToken clears the stored push token, typically on logout.
func RemoveFCMToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		if err := db.Model(&models.User{}).
			Where("id = ?", userId).
			Update("fcm_token", "").Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to remove token"})
			return
		}

		c.JSON(200, gin.H{"message": "Token removed"})
	}
}

// GetNotificationPreferences returns the caller's preferences, creating the
// default row on first access.
func GetNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var prefs models.NotificationPreference
		if err := db.Where("user_id = ?", userId).First(&prefs).Error; err != nil {
			prefs = *models.DefaultPreferences(userId)
			if err := db.Create(&prefs).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to load preferences"})
				return
			}
		}

		c.JSON(200, prefs)
	}
}

// UpdateNotificationPreferences updates the caller's notification toggles.
// Pointer fields distinguish "not sent" from an explicit false.
func UpdateNotificationPreferences(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			PushEnabled         *bool `json:"pushEnabled"`
			BookingAlerts       *bool `json:"bookingAlerts"`
			ModerationAlerts    *bool `json:"moderationAlerts"`
			NewListingAlerts    *bool `json:"newListingAlerts"`
			PromotionalMessages *bool `json:"promotionalMessages"`
			EmailEnabled        *bool `json:"emailEnabled"`
			SMSEnabled          *bool `json:"smsEnabled"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var prefs models.NotificationPreference
		if err := db.Where("user_id = ?", userId).First(&prefs).Error; err != nil {
			prefs = *models.DefaultPreferences(userId)
		}

		if input.PushEnabled != nil {
			prefs.PushEnabled = *input.PushEnabled
		}
		if input.BookingAlerts != nil {
			prefs.BookingAlerts = *input.BookingAlerts
		}
		if input.ModerationAlerts != nil {
			prefs.ModerationAlerts = *input.ModerationAlerts
		}
		if input.NewListingAlerts != nil {
			prefs.NewListingAlerts = *input.NewListingAlerts
		}
		if input.PromotionalMessages != nil {
			prefs.PromotionalMessages = *input.PromotionalMessages
		}
		if input.EmailEnabled != nil {
			prefs.EmailEnabled = *input.EmailEnabled
		}
		if input.SMSEnabled != nil {
			prefs.SMSEnabled = *input.SMSEnabled
		}

		if err := db.Save(&prefs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save preferences"})
			return
		}

		c.JSON(200, prefs)
	}
}
