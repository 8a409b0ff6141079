package models

import (
	"errors"
	"testing"
	"time"
)

// nextWeekday returns the next occurrence of day strictly after today.
func nextWeekday(day time.Weekday) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestValidateViewingDate(t *testing.T) {
	if err := ValidateViewingDate(time.Now().AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("yesterday: got %v, want ErrInvalidSchedule", err)
	}
	if err := ValidateViewingDate(nextWeekday(time.Saturday)); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatal("saturday accepted")
	}
	if err := ValidateViewingDate(nextWeekday(time.Sunday)); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatal("sunday accepted")
	}
	if err := ValidateViewingDate(nextWeekday(time.Monday)); err != nil {
		t.Fatalf("next monday rejected: %v", err)
	}
	// Today is valid when it is a weekday; the comparison ignores time of day.
	if wd := time.Now().Weekday(); wd != time.Saturday && wd != time.Sunday {
		if err := ValidateViewingDate(time.Now()); err != nil {
			t.Fatalf("today rejected: %v", err)
		}
	}
}

func TestValidTimeSlot(t *testing.T) {
	for _, slot := range ViewingTimeSlots {
		if !ValidTimeSlot(slot) {
			t.Errorf("slot %q rejected", slot)
		}
	}
	for _, slot := range []string{"8:00 AM", "6:00 PM", "10am", ""} {
		if ValidTimeSlot(slot) {
			t.Errorf("slot %q accepted", slot)
		}
	}
}

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		action  BookingAction
		to      BookingStatus
		wantErr bool
	}{
		{BookingStatusPending, BookingActionConfirm, BookingStatusConfirmed, false},
		{BookingStatusPending, BookingActionDecline, BookingStatusCancelled, false},
		{BookingStatusPending, BookingActionComplete, "", true},
		{BookingStatusPending, BookingActionCancel, "", true},
		{BookingStatusConfirmed, BookingActionComplete, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingActionCancel, BookingStatusCancelled, false},
		{BookingStatusConfirmed, BookingActionConfirm, "", true},
		{BookingStatusCancelled, BookingActionConfirm, "", true},
		{BookingStatusCancelled, BookingActionComplete, "", true},
		{BookingStatusCompleted, BookingActionCancel, "", true},
		{BookingStatusCompleted, BookingActionComplete, "", true},
	}

	for _, tc := range cases {
		b := Booking{Status: tc.from}
		err := b.Transition(tc.action)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s + %s: got %v, want ErrInvalidTransition", tc.from, tc.action, err)
			}
			if b.Status != tc.from {
				t.Errorf("%s + %s: booking mutated on rejected transition", tc.from, tc.action)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s + %s: unexpected error %v", tc.from, tc.action, err)
			continue
		}
		if b.Status != tc.to {
			t.Errorf("%s + %s: got status %s, want %s", tc.from, tc.action, b.Status, tc.to)
		}
	}
}

func TestRescheduleValidation(t *testing.T) {
	monday := nextWeekday(time.Monday)

	b := Booking{Status: BookingStatusConfirmed, TimeSlot: "10:00 AM"}
	if err := b.Reschedule(nextWeekday(time.Saturday), "10:00 AM"); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("weekend reschedule: got %v", err)
	}
	if err := b.Reschedule(time.Now().AddDate(0, 0, -1), "10:00 AM"); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("past reschedule: got %v", err)
	}
	if err := b.Reschedule(monday, "7:00 AM"); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("bad slot reschedule: got %v", err)
	}

	// Rejected reschedules leave the booking untouched.
	if b.Status != BookingStatusConfirmed || b.Rescheduled || b.TimeSlot != "10:00 AM" {
		t.Fatalf("booking mutated by rejected reschedule: %+v", b)
	}

	if err := b.Reschedule(monday, "2:00 PM"); err != nil {
		t.Fatalf("valid reschedule rejected: %v", err)
	}
	if b.Status != BookingStatusPending {
		t.Fatalf("reschedule should force pending, got %s", b.Status)
	}
	if !b.Rescheduled || b.TimeSlot != "2:00 PM" || !b.Date.Equal(monday) {
		t.Fatalf("reschedule did not replace slot/date: %+v", b)
	}

	terminal := Booking{Status: BookingStatusCancelled}
	if err := terminal.Reschedule(monday, "2:00 PM"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled booking rescheduled: %v", err)
	}
}

func TestBookingFullLifecycle(t *testing.T) {
	monday := nextWeekday(time.Monday)
	tuesday := nextWeekday(time.Tuesday)

	b := Booking{Status: BookingStatusPending, Date: monday, TimeSlot: "10:00 AM"}

	if err := b.Transition(BookingActionConfirm); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := b.Reschedule(tuesday, "2:00 PM"); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if b.Status != BookingStatusPending || !b.Rescheduled {
		t.Fatalf("after reschedule: %+v", b)
	}
	if err := b.Transition(BookingActionConfirm); err != nil {
		t.Fatalf("re-confirm: %v", err)
	}
	if err := b.Transition(BookingActionComplete); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.Status != BookingStatusCompleted {
		t.Fatalf("final status %s", b.Status)
	}
	for _, action := range []BookingAction{BookingActionConfirm, BookingActionDecline, BookingActionCancel, BookingActionComplete} {
		if err := b.Transition(action); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("completed booking accepted %s", action)
		}
	}
}
