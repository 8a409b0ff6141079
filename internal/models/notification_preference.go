package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationPreference represents user notification preferences
type NotificationPreference struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"userId"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// General push notification toggle
	PushEnabled bool `gorm:"column:push_enabled;default:true" json:"pushEnabled"`

	// Specific notification preferences
	BookingAlerts       bool `gorm:"column:booking_alerts;default:true" json:"bookingAlerts"`
	ModerationAlerts    bool `gorm:"column:moderation_alerts;default:true" json:"moderationAlerts"`
	NewListingAlerts    bool `gorm:"column:new_listing_alerts;default:true" json:"newListingAlerts"`
	PromotionalMessages bool `gorm:"column:promotional_messages;default:true" json:"promotionalMessages"`

	// Email and SMS preferences
	EmailEnabled bool `gorm:"column:email_enabled;default:true" json:"emailEnabled"`
	SMSEnabled   bool `gorm:"column:sms_enabled;default:true" json:"smsEnabled"`
}

// TableName specifies the table name for NotificationPreference
func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// AllowsEmail reports whether an email about the given notification type may
// be sent under these preferences.
func (p NotificationPreference) AllowsEmail(t NotificationType) bool {
	return p.EmailEnabled && p.allowsType(t)
}

// AllowsSMS reports whether an SMS about the given notification type may be
// sent under these preferences.
func (p NotificationPreference) AllowsSMS(t NotificationType) bool {
	return p.SMSEnabled && p.allowsType(t)
}

func (p NotificationPreference) allowsType(t NotificationType) bool {
	switch t {
	case NotificationTypeBooking:
		return p.BookingAlerts
	case NotificationTypeModeration:
		return p.ModerationAlerts
	}
	return true
}

// DefaultPreferences returns default notification preferences for a new user
func DefaultPreferences(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID:              userID,
		PushEnabled:         true,
		BookingAlerts:       true,
		ModerationAlerts:    true,
		NewListingAlerts:    true,
		PromotionalMessages: true,
		EmailEnabled:        true,
		SMSEnabled:          true,
	}
}
