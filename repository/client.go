package repository

import (
	"context"

	"github.com/qreport/backend/domain"
)

type ClientFilter struct {
	Query      string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Deactivate(ctx context.Context, id string) error
}
