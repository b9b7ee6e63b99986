package domain

import (
	"strings"
	"time"
)

// Island is a robotic work cell installed at a facility. Interventions
// reference islands through their work location.
type Island struct {
	ID           string    `json:"id"`
	FacilityID   string    `json:"facility_id"`
	Name         string    `json:"name"`
	SerialNumber string    `json:"serial_number"`
	Model        string    `json:"model,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (i *Island) Validate() error {
	if i == nil {
		return ErrInvalidPayload
	}
	if i.FacilityID == "" {
		return NewError(ErrCodeInvalid, "facility id is required")
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		return NewError(ErrCodeInvalid, "island name is required")
	}
	if len(name) < 2 || len(name) > 100 {
		return NewError(ErrCodeInvalid, "island name must be between 2 and 100 characters")
	}
	if strings.TrimSpace(i.SerialNumber) == "" {
		return NewError(ErrCodeInvalid, "island serial number is required")
	}
	if len(i.SerialNumber) > 50 {
		return NewError(ErrCodeInvalid, "island serial number must not exceed 50 characters")
	}
	return nil
}
