package slotRepo

import (
	"context"
	"sync"

	"inkbook/models"
)

type memorySlotRepo struct {
	mu     sync.RWMutex
	booked map[models.SlotKey]struct{}
}

// NewMemorySlotRepo returns a process-local store. State is lost on restart
// and is not seen by other instances.
func NewMemorySlotRepo() SlotRepository {
	return &memorySlotRepo{booked: make(map[models.SlotKey]struct{})}
}

func (r *memorySlotRepo) List(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	members := make([]string, 0, len(r.booked))
	for k := range r.booked {
		members = append(members, string(k))
	}
	r.mu.RUnlock()
	return decodeMembers(members, nil), nil
}

func (r *memorySlotRepo) IsBooked(ctx context.Context, date, time string) (bool, error) {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.booked[key]
	return ok, nil
}

func (r *memorySlotRepo) Toggle(ctx context.Context, date, time string) (bool, error) {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.booked[key]; ok {
		delete(r.booked, key)
		return false, nil
	}
	r.booked[key] = struct{}{}
	return true, nil
}

func (r *memorySlotRepo) Add(ctx context.Context, date, time string) error {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.booked[key] = struct{}{}
	r.mu.Unlock()
	return nil
}

func (r *memorySlotRepo) Remove(ctx context.Context, date, time string) error {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.booked, key)
	r.mu.Unlock()
	return nil
}

func (r *memorySlotRepo) Ping(ctx context.Context) error { return nil }

func (r *memorySlotRepo) Backend() string { return "memory" }

func (r *memorySlotRepo) Shared() bool { return false }
