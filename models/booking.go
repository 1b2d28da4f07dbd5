package models

// Booking is one booked slot as seen by API callers. It is materialized from
// a SlotKey on read and carries no customer data.
type Booking struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM", 24-hour
}

// Key returns the canonical slot key for b.
func (b Booking) Key() (SlotKey, error) {
	return EncodeSlotKey(b.Date, b.Time)
}

// ToggleRequest is the body of POST /bookings.
type ToggleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ToggleResponse reports the slot state after a toggle.
type ToggleResponse struct {
	Message string `json:"message"`
	Booked  bool   `json:"booked"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// BookingsResponse is returned by GET /bookings.
type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	// Shared is false when slot state lives only in this process.
	Shared bool `json:"shared"`
}

// StoreDiagnostics is returned by GET /bookings?debug=1.
type StoreDiagnostics struct {
	OK                bool   `json:"ok"`
	BackendConfigured bool   `json:"backendConfigured"`
	Reachable         bool   `json:"reachable"`
	Backend           string `json:"backend"`
}
