package client

import (
	"context"
	"fmt"

	"inkbook/models"
)

// Toggler is the write side of Client.
type Toggler interface {
	Toggle(ctx context.Context, date, slotTime string) (bool, error)
}

// OptimisticToggle flips a slot in the cache before the server answers, so
// the calendar updates immediately. If the server call fails the flip is
// undone and the error returned. On success the cache takes the server's
// state, which can differ from the guess if another client toggled first.
func (s *SlotCache) OptimisticToggle(ctx context.Context, api Toggler, date, slotTime string) (bool, error) {
	key, err := models.EncodeSlotKey(date, slotTime)
	if err != nil {
		return false, err
	}
	b, _ := key.Booking()

	s.mu.RLock()
	_, was := s.booked[key]
	s.mu.RUnlock()
	s.set(key, b, !was)

	booked, err := api.Toggle(ctx, b.Date, b.Time)
	if err != nil {
		s.set(key, b, was)
		return was, fmt.Errorf("toggle %s: %w", key, err)
	}
	s.set(key, b, booked)
	return booked, nil
}
