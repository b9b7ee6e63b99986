package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

type ContactRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	// ListByClient returns the client's contacts in stable order
	// (created_at, then id). activeOnly restricts to non-deactivated rows.
	ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	// Deactivate soft-deletes the contact and clears its primary flag.
	Deactivate(ctx context.Context, id string) error
	// SetPrimary atomically clears the previous primary of the client and
	// marks the given contact primary.
	SetPrimary(ctx context.Context, clientID, contactID string) error
	// FindByEmail and FindByPhone implement the global uniqueness checks.
	// excludeID skips the contact being updated. They return
	// domain.ErrContactNotFound when no match exists.
	FindByEmail(ctx context.Context, email, excludeID string) (*domain.Contact, error)
	FindByPhone(ctx context.Context, phone, excludeID string) (*domain.Contact, error)
}
