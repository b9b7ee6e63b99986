package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Contact is a named person attached to a client. At most one active contact
// per client carries the primary flag; the use-case layer maintains that
// invariant on create, update and deactivate.
type Contact struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	MobilePhone string    `json:"mobile_phone,omitempty"`
	Role        string    `json:"role,omitempty"`
	IsPrimary   bool      `json:"is_primary"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Contact) Validate() error {
	if c == nil {
		return ErrInvalidPayload
	}
	if c.ClientID == "" {
		return NewError(ErrCodeInvalid, "client id is required")
	}
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		return NewError(ErrCodeInvalid, "full name is required")
	}
	if len(name) < 2 || len(name) > 100 {
		return NewError(ErrCodeInvalid, "full name must be between 2 and 100 characters")
	}
	if len(c.Role) > 50 {
		return NewError(ErrCodeInvalid, "role must not exceed 50 characters")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return NewError(ErrCodeInvalid, "email address is malformed")
		}
	}
	return nil
}

// MatchesQuery implements the list search rule: short queries (two characters
// or fewer) match the display name only; longer queries also match email,
// phone, mobile phone and role. Matching is a case-insensitive substring test.
func (c *Contact) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.FullName), q) {
		return true
	}
	if len(q) <= 2 {
		return false
	}
	for _, field := range []string{c.Email, c.Phone, c.MobilePhone, c.Role} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
