package client

import (
	"context"
	"sync"
	"time"

	"inkbook/models"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often SlotCache.Run refreshes.
const DefaultPollInterval = 30 * time.Second

// DemoBookings is shown when the API has never answered, so a calendar still
// renders something plausible.
var DemoBookings = []models.Booking{
	{Date: "2025-01-15", Time: "10:00"},
	{Date: "2025-01-15", Time: "14:00"},
	{Date: "2025-01-20", Time: "12:00"},
}

// Lister is the read side of Client.
type Lister interface {
	List(ctx context.Context) ([]models.Booking, error)
}

// SlotCache keeps a local copy of the booked slots. Failed refreshes keep the
// last list that was fetched.
type SlotCache struct {
	source   Lister
	interval time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	booked  map[models.SlotKey]models.Booking
	fetched bool
	demo    bool
	lastErr error
}

func NewSlotCache(source Lister, interval time.Duration, logger *zap.Logger) *SlotCache {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotCache{
		source:   source,
		interval: interval,
		logger:   logger,
		booked:   make(map[models.SlotKey]models.Booking),
	}
}

// Refresh fetches the list once. On failure before any successful fetch the
// cache switches to DemoBookings.
func (s *SlotCache) Refresh(ctx context.Context) error {
	bookings, err := s.source.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err != nil {
		if !s.fetched && !s.demo {
			s.logger.Warn("booking list unavailable, using demo slots", zap.Error(err))
			s.replace(DemoBookings)
			s.demo = true
		} else {
			s.logger.Warn("booking list refresh failed, keeping last known slots", zap.Error(err))
		}
		return err
	}
	s.replace(bookings)
	s.fetched = true
	s.demo = false
	return nil
}

// Run refreshes immediately and then on every tick until ctx is done.
func (s *SlotCache) Run(ctx context.Context) {
	_ = s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// Bookings returns the cached slots in calendar order.
func (s *SlotCache) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, 0, len(s.booked))
	for _, b := range s.booked {
		out = append(out, b)
	}
	models.SortBookings(out)
	return out
}

// IsBooked reports whether the cache holds the slot. Malformed input is never booked.
func (s *SlotCache) IsBooked(date, slotTime string) bool {
	key, err := models.EncodeSlotKey(date, slotTime)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.booked[key]
	return ok
}

// Demo reports whether the cache is showing DemoBookings.
func (s *SlotCache) Demo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.demo
}

// LastError is the error from the most recent refresh, if any.
func (s *SlotCache) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// set marks a single slot, returning its previous state.
func (s *SlotCache) set(key models.SlotKey, b models.Booking, booked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, was := s.booked[key]
	if booked {
		s.booked[key] = b
	} else {
		delete(s.booked, key)
	}
	return was
}

func (s *SlotCache) replace(bookings []models.Booking) {
	next := make(map[models.SlotKey]models.Booking, len(bookings))
	for _, b := range bookings {
		key, err := b.Key()
		if err != nil {
			continue
		}
		next[key] = b
	}
	s.booked = next
}
