package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

type InterventionFilter struct {
	Status     domain.InterventionStatus
	ClientID   string
	Technician string
	Limit      int
	Offset     int
}

type InterventionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TechnicalIntervention, error)
	List(ctx context.Context, filter InterventionFilter) ([]domain.TechnicalIntervention, error)
	Create(ctx context.Context, intervention *domain.TechnicalIntervention) (*domain.TechnicalIntervention, error)
	Update(ctx context.Context, intervention *domain.TechnicalIntervention) error
	UpdateStatus(ctx context.Context, id string, status domain.InterventionStatus) error
	Delete(ctx context.Context, id string) error
}
