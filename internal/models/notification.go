package models

import (
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeBooking    NotificationType = "booking"
	NotificationTypeModeration NotificationType = "moderation"
	NotificationTypeGeneral    NotificationType = "general"
)

// Notification is a stored in-app notification record. Delivery over
// WebSocket/push is fire-and-forget; this row is what the inbox lists.
type Notification struct {
	gorm.Model
	UserID  uint             `json:"userId" gorm:"not null;index"`
	User    User             `json:"-"`
	Type    NotificationType `json:"type" gorm:"not null"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message" gorm:"not null"`
	Link    string           `json:"link"`
	Read    bool             `json:"read" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (Notification) TableName() string {
	return "notifications"
}
