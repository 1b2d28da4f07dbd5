package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// SlotSeparator joins the date and time halves of a SlotKey. Neither the
// YYYY-MM-DD date nor the H:MM time format can contain it.
const SlotSeparator = "|"

// SlotKey is the canonical set member for one (date, time) slot, e.g. "2025-03-10|14:00".
type SlotKey string

var slotTimePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// EncodeSlotKey canonicalizes a date and time into a SlotKey.
func EncodeSlotKey(date, time string) (SlotKey, error) {
	date = strings.TrimSpace(date)
	time = strings.TrimSpace(time)
	if date == "" || time == "" {
		return "", &InvalidSlotError{Date: date, Time: time, Reason: "date and time are required"}
	}
	if strings.Contains(date, SlotSeparator) || strings.Contains(time, SlotSeparator) {
		return "", &InvalidSlotError{Date: date, Time: time, Reason: "date and time must not contain " + SlotSeparator}
	}
	return SlotKey(date + SlotSeparator + time), nil
}

// DecodeSlotKey splits a key on the first separator.
func DecodeSlotKey(key string) (string, string, error) {
	date, time, ok := strings.Cut(key, SlotSeparator)
	if !ok || date == "" || time == "" {
		return "", "", &InvalidSlotError{Key: key, Reason: "malformed slot key"}
	}
	return date, time, nil
}

// String implements fmt.Stringer.
func (k SlotKey) String() string { return string(k) }

// Booking returns the decoded slot.
func (k SlotKey) Booking() (Booking, error) {
	date, t, err := DecodeSlotKey(string(k))
	if err != nil {
		return Booking{}, err
	}
	return Booking{Date: date, Time: t}, nil
}

// ValidateSlotFormat checks that date is a real YYYY-MM-DD calendar date and
// that t is a 24-hour H:MM or HH:MM clock time.
func ValidateSlotFormat(date, t string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return &InvalidSlotError{Date: date, Time: t, Reason: fmt.Sprintf("date %q is not YYYY-MM-DD", date)}
	}
	if !slotTimePattern.MatchString(t) {
		return &InvalidSlotError{Date: date, Time: t, Reason: fmt.Sprintf("time %q is not HH:MM", t)}
	}
	return nil
}

// SortBookings orders bookings by date, then by clock time. "9:00" sorts before "10:00".
func SortBookings(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return clockMinutes(bookings[i].Time) < clockMinutes(bookings[j].Time)
	})
}

func clockMinutes(t string) int {
	h, m, ok := strings.Cut(t, ":")
	if !ok {
		return -1
	}
	var hh, mm int
	if _, err := fmt.Sscanf(h+" "+m, "%d %d", &hh, &mm); err != nil {
		return -1
	}
	return hh*60 + mm
}
