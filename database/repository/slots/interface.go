// Package slotRepo owns the set of booked appointment slots. It is the only
// write path to that set.
package slotRepo

import (
	"context"

	"inkbook/models"
)

// SlotRepository is the slot booking store. Each call is atomic on its own;
// no call spans another. Backend failures are returned as
// *models.StoreUnavailableError.
type SlotRepository interface {
	// List returns every booked slot. Members that do not decode are skipped.
	List(ctx context.Context) ([]models.Booking, error)
	IsBooked(ctx context.Context, date, time string) (bool, error)
	// Toggle flips the slot and returns the new state.
	Toggle(ctx context.Context, date, time string) (bool, error)
	// Add is a no-op for a slot that is already booked.
	Add(ctx context.Context, date, time string) error
	// Remove is a no-op for a slot that is not booked.
	Remove(ctx context.Context, date, time string) error

	Ping(ctx context.Context) error
	// Backend names the storage engine, e.g. "redis".
	Backend() string
	// Shared reports whether state is visible to other instances and survives restarts.
	Shared() bool
}

func unavailable(backend, op string, err error) error {
	return &models.StoreUnavailableError{Backend: backend, Op: op, Err: err}
}

// decodeMembers turns raw set members into bookings, dropping anything
// another writer left in a shape we cannot read.
func decodeMembers(members []string, skip func(member string, err error)) []models.Booking {
	bookings := make([]models.Booking, 0, len(members))
	for _, m := range members {
		b, err := models.SlotKey(m).Booking()
		if err != nil {
			if skip != nil {
				skip(m, err)
			}
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings
}
