package models

import "testing"

func TestPreferenceGates(t *testing.T) {
	tests := []struct {
		name      string
		prefs     NotificationPreference
		notifType NotificationType
		wantEmail bool
		wantSMS   bool
	}{
		{
			name:      "defaults allow everything",
			prefs:     *DefaultPreferences(1),
			notifType: NotificationTypeBooking,
			wantEmail: true,
			wantSMS:   true,
		},
		{
			name: "email channel off blocks email only",
			prefs: NotificationPreference{
				EmailEnabled: false, SMSEnabled: true,
				BookingAlerts: true, ModerationAlerts: true,
			},
			notifType: NotificationTypeBooking,
			wantEmail: false,
			wantSMS:   true,
		},
		{
			name: "booking alerts off blocks both channels for bookings",
			prefs: NotificationPreference{
				EmailEnabled: true, SMSEnabled: true,
				BookingAlerts: false, ModerationAlerts: true,
			},
			notifType: NotificationTypeBooking,
			wantEmail: false,
			wantSMS:   false,
		},
		{
			name: "moderation alerts off blocks moderation email",
			prefs: NotificationPreference{
				EmailEnabled: true, SMSEnabled: true,
				BookingAlerts: true, ModerationAlerts: false,
			},
			notifType: NotificationTypeModeration,
			wantEmail: false,
			wantSMS:   false,
		},
		{
			name: "moderation alerts off does not block bookings",
			prefs: NotificationPreference{
				EmailEnabled: true, SMSEnabled: true,
				BookingAlerts: true, ModerationAlerts: false,
			},
			notifType: NotificationTypeBooking,
			wantEmail: true,
			wantSMS:   true,
		},
		{
			name: "general type only needs the channel",
			prefs: NotificationPreference{
				EmailEnabled: true, SMSEnabled: false,
				BookingAlerts: false, ModerationAlerts: false,
			},
			notifType: NotificationTypeGeneral,
			wantEmail: true,
			wantSMS:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.AllowsEmail(tt.notifType); got != tt.wantEmail {
				t.Errorf("AllowsEmail(%s) = %v, want %v", tt.notifType, got, tt.wantEmail)
			}
			if got := tt.prefs.AllowsSMS(tt.notifType); got != tt.wantSMS {
				t.Errorf("AllowsSMS(%s) = %v, want %v", tt.notifType, got, tt.wantSMS)
			}
		})
	}
}
