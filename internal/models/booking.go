package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingAction is an operation requested against a booking's lifecycle.
type BookingAction string

const (
	BookingActionConfirm  BookingAction = "confirm"
	BookingActionDecline  BookingAction = "decline"
	BookingActionComplete BookingAction = "complete"
	BookingActionCancel   BookingAction = "cancel"
)

var (
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrInvalidSchedule   = errors.New("invalid viewing schedule")
)

// ViewingTimeSlots are the bookable hourly viewing slots.
var ViewingTimeSlots = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
}

// ValidTimeSlot reports whether slot is one of the bookable viewing slots.
func ValidTimeSlot(slot string) bool {
	for _, s := range ViewingTimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Booking is a scheduled property-viewing request. Cancellation is a status
// change, never a row delete.
type Booking struct {
	gorm.Model
	UserID      uint          `json:"userId" gorm:"not null;index"`
	User        User          `json:"user"`
	VendorID    uint          `json:"vendorId" gorm:"not null;index"`
	Vendor      User          `json:"vendor" gorm:"foreignKey:VendorID"`
	ListingID   uint          `json:"listingId" gorm:"not null;index"`
	Listing     Listing       `json:"listing"`
	Date        time.Time     `json:"date" gorm:"not null"`
	TimeSlot    string        `json:"timeSlot" gorm:"not null"`
	Status      BookingStatus `json:"status" gorm:"not null;default:'pending'"`
	Notes       string        `json:"notes"`
	Rescheduled bool          `json:"rescheduled" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// bookingTransitions is the single place lifecycle moves are defined.
// Completed and cancelled bookings accept no further actions.
var bookingTransitions = map[BookingStatus]map[BookingAction]BookingStatus{
	BookingStatusPending: {
		BookingActionConfirm: BookingStatusConfirmed,
		BookingActionDecline: BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		BookingActionComplete: BookingStatusCompleted,
		BookingActionCancel:   BookingStatusCancelled,
	},
}

// Transition applies action to the booking's status. The booking is left
// untouched when the action is not permitted from the current state.
func (b *Booking) Transition(action BookingAction) error {
	next, ok := bookingTransitions[b.Status][action]
	if !ok {
		return fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, b.Status)
	}
	b.Status = next
	return nil
}

// ValidateViewingDate rejects past dates (date-only comparison) and weekends.
func ValidateViewingDate(date time.Time) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidSchedule)
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return fmt.Errorf("%w: viewings are not available on weekends", ErrInvalidSchedule)
	}
	return nil
}

// Reschedule replaces the booking's date and time slot. The new slot is
// validated before anything is mutated; a successful reschedule always drops
// the booking back to pending so the vendor has to confirm again.
func (b *Booking) Reschedule(date time.Time, timeSlot string) error {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, b.Status)
	}
	if !ValidTimeSlot(timeSlot) {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidSchedule, timeSlot)
	}
	if err := ValidateViewingDate(date); err != nil {
		return err
	}

	b.Date = date
	b.TimeSlot = timeSlot
	b.Status = BookingStatusPending
	b.Rescheduled = true
	b.UpdatedAt = time.Now()
	return nil
}
