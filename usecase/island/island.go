package island

import (
	"context"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type UseCase struct {
	islands    repository.IslandRepository
	facilities repository.FacilityRepository
	logger     *zap.Logger
}

func New(islands repository.IslandRepository, facilities repository.FacilityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{islands: islands, facilities: facilities, logger: logger}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Island, error) {
	return uc.islands.GetByID(ctx, id)
}

func (uc *UseCase) ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]domain.Island, error) {
	return uc.islands.ListByFacility(ctx, facilityID, activeOnly)
}

func (uc *UseCase) Create(ctx context.Context, island *domain.Island) (*domain.Island, error) {
	if err := island.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.facilities.GetByID(ctx, island.FacilityID); err != nil {
		return nil, err
	}
	return uc.islands.Create(ctx, island)
}

func (uc *UseCase) Update(ctx context.Context, island *domain.Island) (*domain.Island, error) {
	if island == nil || island.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := island.Validate(); err != nil {
		return nil, err
	}
	current, err := uc.islands.GetByID(ctx, island.ID)
	if err != nil {
		return nil, err
	}
	// An island stays bound to the facility it was installed at.
	if island.FacilityID != current.FacilityID {
		return nil, domain.NewError(domain.ErrCodeInvalidState, "island cannot be moved to another facility")
	}
	if err := uc.islands.Update(ctx, island); err != nil {
		return nil, err
	}
	return island, nil
}

func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	return uc.islands.Deactivate(ctx, id)
}
