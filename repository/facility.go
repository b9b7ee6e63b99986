package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

type FacilityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Facility, error)
	// ListByClient returns the client's facilities in stable order
	// (created_at, then id).
	ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]domain.Facility, error)
	Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error)
	Update(ctx context.Context, facility *domain.Facility) error
	Deactivate(ctx context.Context, id string) error
	// SetPrimary atomically clears the previous primary facility of the
	// client and marks the given one primary.
	SetPrimary(ctx context.Context, clientID, facilityID string) error
}
