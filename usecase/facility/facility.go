// Package facility mirrors the contact rules for client sites: full field
// validation, name uniqueness within the client, and the single active
// primary facility invariant with automatic reassignment.
package facility

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type UseCase struct {
	facilities repository.FacilityRepository
	clients    repository.ClientRepository
	logger     *zap.Logger
}

func New(facilities repository.FacilityRepository, clients repository.ClientRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		facilities: facilities,
		clients:    clients,
		logger:     logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Facility, error) {
	return uc.facilities.GetByID(ctx, id)
}

func (uc *UseCase) ListByClient(ctx context.Context, clientID string, activeOnly bool) ([]domain.Facility, error) {
	return uc.facilities.ListByClient(ctx, clientID, activeOnly)
}

func (uc *UseCase) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	if err := facility.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.clients.GetByID(ctx, facility.ClientID); err != nil {
		return nil, err
	}
	if err := uc.checkNameUnique(ctx, facility, ""); err != nil {
		return nil, err
	}

	hasPrimary, err := uc.hasActivePrimary(ctx, facility.ClientID)
	if err != nil {
		return nil, err
	}
	if !hasPrimary {
		facility.IsPrimary = true
	}

	return uc.facilities.Create(ctx, facility)
}

func (uc *UseCase) Update(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	if facility == nil || facility.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	old, err := uc.facilities.GetByID(ctx, facility.ID)
	if err != nil {
		return nil, err
	}
	if facility.ClientID != "" && facility.ClientID != old.ClientID {
		return nil, domain.NewError(domain.ErrCodeInvalidState, "facility cannot be moved to another client")
	}
	facility.ClientID = old.ClientID

	if err := facility.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkNameUnique(ctx, facility, facility.ID); err != nil {
		return nil, err
	}

	switch {
	case facility.IsPrimary && !old.IsPrimary:
		facility.IsPrimary = false
		if err := uc.facilities.Update(ctx, facility); err != nil {
			return nil, err
		}
		if err := uc.facilities.SetPrimary(ctx, old.ClientID, facility.ID); err != nil {
			return nil, err
		}
		facility.IsPrimary = true

	case !facility.IsPrimary && old.IsPrimary:
		substitute, err := uc.firstOtherActive(ctx, old.ClientID, facility.ID)
		if err != nil {
			return nil, err
		}
		if err := uc.facilities.Update(ctx, facility); err != nil {
			return nil, err
		}
		if err := uc.facilities.SetPrimary(ctx, old.ClientID, substitute.ID); err != nil {
			return nil, err
		}

	default:
		if err := uc.facilities.Update(ctx, facility); err != nil {
			return nil, err
		}
	}
	return facility, nil
}

func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	old, err := uc.facilities.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if old.IsPrimary && old.IsActive {
		substitute, err := uc.firstOtherActive(ctx, old.ClientID, id)
		if err != nil {
			return err
		}
		if err := uc.facilities.Deactivate(ctx, id); err != nil {
			return err
		}
		return uc.facilities.SetPrimary(ctx, old.ClientID, substitute.ID)
	}

	return uc.facilities.Deactivate(ctx, id)
}

func (uc *UseCase) hasActivePrimary(ctx context.Context, clientID string) (bool, error) {
	facilities, err := uc.facilities.ListByClient(ctx, clientID, true)
	if err != nil {
		return false, err
	}
	for _, f := range facilities {
		if f.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (uc *UseCase) firstOtherActive(ctx context.Context, clientID, excludeID string) (*domain.Facility, error) {
	facilities, err := uc.facilities.ListByClient(ctx, clientID, true)
	if err != nil {
		return nil, err
	}
	for i := range facilities {
		if facilities[i].ID != excludeID {
			return &facilities[i], nil
		}
	}
	return nil, domain.NewError(domain.ErrCodeInvalidState, "cannot remove the last active primary facility")
}

func (uc *UseCase) checkNameUnique(ctx context.Context, facility *domain.Facility, excludeID string) error {
	facilities, err := uc.facilities.ListByClient(ctx, facility.ClientID, false)
	if err != nil {
		return err
	}
	for _, f := range facilities {
		if f.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(facility.Name)) {
			return domain.NewError(domain.ErrCodeConflict, "facility name already used for this client")
		}
	}
	return nil
}
