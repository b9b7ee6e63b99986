package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

type IslandRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Island, error)
	ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]domain.Island, error)
	Create(ctx context.Context, island *domain.Island) (*domain.Island, error)
	Update(ctx context.Context, island *domain.Island) error
	Deactivate(ctx context.Context, id string) error
}
