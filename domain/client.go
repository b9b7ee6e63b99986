package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Client is the parent aggregate owning contacts and facilities.
type Client struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	VATNumber    string    `json:"vat_number,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrInvalidPayload
	}
	name := strings.TrimSpace(c.BusinessName)
	if name == "" {
		return NewError(ErrCodeInvalid, "business name is required")
	}
	if len(name) < 2 || len(name) > 100 {
		return NewError(ErrCodeInvalid, "business name must be between 2 and 100 characters")
	}
	if len(c.Notes) > 500 {
		return NewError(ErrCodeInvalid, "notes must not exceed 500 characters")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return NewError(ErrCodeInvalid, "email address is malformed")
		}
	}
	return nil
}
