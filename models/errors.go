package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks at the HTTP boundary.
var (
	ErrInvalidSlot      = errors.New("invalid slot")
	ErrValidation       = errors.New("validation failed")
	ErrSlotConflict     = errors.New("slot already booked")
	ErrNotification     = errors.New("notification failed")
	ErrStoreUnavailable = errors.New("slot store unavailable")
)

// InvalidSlotError reports a date/time pair or raw key that cannot be a SlotKey.
type InvalidSlotError struct {
	Key    string
	Date   string
	Time   string
	Reason string
}

func (e *InvalidSlotError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid slot key %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid slot %q %q: %s", e.Date, e.Time, e.Reason)
}

func (e *InvalidSlotError) Is(target error) bool { return target == ErrInvalidSlot }

// ValidationError names the submission fields that were missing or invalid.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SlotConflictError is returned when a submission targets an already booked slot.
type SlotConflictError struct {
	Date string
	Time string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("selected time slot %s at %s is already booked", e.Date, e.Time)
}

func (e *SlotConflictError) Is(target error) bool { return target == ErrSlotConflict }

// NotificationError wraps a transport failure while notifying the studio.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return "failed to send booking notification: " + e.Err.Error() }

func (e *NotificationError) Unwrap() error { return e.Err }

func (e *NotificationError) Is(target error) bool { return target == ErrNotification }

// StoreUnavailableError wraps a failure to reach the slot store backend.
type StoreUnavailableError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s slot store unavailable during %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func (e *StoreUnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }
