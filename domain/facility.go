package domain

import (
	"strings"
	"time"
)

// Address is the physical location of a facility.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Province   string `json:"province,omitempty"`
	Country    string `json:"country"`
}

func (a Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return NewError(ErrCodeInvalid, "address street is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return NewError(ErrCodeInvalid, "address city is required")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		return NewError(ErrCodeInvalid, "address postal code is required")
	}
	if strings.TrimSpace(a.Country) == "" {
		return NewError(ErrCodeInvalid, "address country is required")
	}
	return nil
}

// Facility is a client site where robotic islands are installed. The
// single-primary invariant applies to active facilities per client.
type Facility struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code,omitempty"`
	Description string    `json:"description,omitempty"`
	Address     Address   `json:"address"`
	IsPrimary   bool      `json:"is_primary"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *Facility) Validate() error {
	if f == nil {
		return ErrInvalidPayload
	}
	if f.ClientID == "" {
		return NewError(ErrCodeInvalid, "client id is required")
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return NewError(ErrCodeInvalid, "facility name is required")
	}
	if len(name) < 2 || len(name) > 100 {
		return NewError(ErrCodeInvalid, "facility name must be between 2 and 100 characters")
	}
	if len(f.Code) > 50 {
		return NewError(ErrCodeInvalid, "facility code must not exceed 50 characters")
	}
	if len(f.Description) > 500 {
		return NewError(ErrCodeInvalid, "facility description must not exceed 500 characters")
	}
	return f.Address.Validate()
}
