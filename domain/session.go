package domain

import "time"

// Session represents a cached technician authentication session stored in Redis.
type Session struct {
	ID           string    `json:"id"`
	TechnicianID string    `json:"technician_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	DeviceName   string    `json:"device_name,omitempty"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
