package services

import (
	"context"

	"github.com/brianmwangi/estatelink-backend/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notify records an in-app notification for a user and fans it out over
// WebSocket and push. The stored row is the source of truth; delivery is
// fire-and-forget and never fails the calling operation.
func Notify(db *gorm.DB, hub *Hub, userID uint, notifType models.NotificationType, title, message, link string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Link:    link,
	}

	if err := db.Create(&notification).Error; err != nil {
		log.WithError(err).WithField("userId", userID).Error("Failed to store notification")
		return
	}

	if hub != nil {
		hub.SendToUser(userID, "notification", notification)
	}

	var prefs models.NotificationPreference
	if err := db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		// No stored preferences means defaults, and defaults allow push.
		prefs = *models.DefaultPreferences(userID)
	}
	if !prefs.PushEnabled {
		return
	}
	if notifType == models.NotificationTypeBooking && !prefs.BookingAlerts {
		return
	}
	if notifType == models.NotificationTypeModeration && !prefs.ModerationAlerts {
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		log.WithError(err).WithField("userId", userID).Warn("Notification target not found for push")
		return
	}

	if err := SendPushToToken(context.Background(), user.FCMToken, PushPayload{
		Title: title,
		Body:  message,
		Data: map[string]interface{}{
			"type": string(notifType),
			"link": link,
		},
	}); err != nil {
		log.WithError(err).WithField("userId", userID).Warn("Failed to send push notification")
	}
}
