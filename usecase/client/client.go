package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type UseCase struct {
	clients repository.ClientRepository
	logger  *zap.Logger
}

func New(clients repository.ClientRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{clients: clients, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clients.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	return uc.clients.List(ctx, filter)
}

func (uc *UseCase) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := client.Validate(); err != nil {
		return nil, err
	}
	return uc.clients.Create(ctx, client)
}

func (uc *UseCase) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil || client.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	return uc.clients.Deactivate(ctx, id)
}
