package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qreport/backend/domain"
)

type FacilityRepository struct {
	mu         sync.RWMutex
	facilities []domain.Facility
}

func NewFacilityRepository() *FacilityRepository {
	return &FacilityRepository{}
}

func (r *FacilityRepository) GetByID(_ context.Context, id string) (*domain.Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.facilities {
		if r.facilities[i].ID == id {
			f := r.facilities[i]
			return &f, nil
		}
	}
	return nil, domain.ErrFacilityNotFound
}

func (r *FacilityRepository) ListByClient(_ context.Context, clientID string, activeOnly bool) ([]domain.Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Facility
	for _, f := range r.facilities {
		if f.ClientID != clientID {
			continue
		}
		if activeOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *FacilityRepository) Create(_ context.Context, facility *domain.Facility) (*domain.Facility, error) {
	if facility == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if facility.ID == "" {
		facility.ID = uuid.NewString()
	}
	now := time.Now()
	facility.IsActive = true
	facility.CreatedAt = now
	facility.UpdatedAt = now
	r.facilities = append(r.facilities, *facility)
	return facility, nil
}

func (r *FacilityRepository) Update(_ context.Context, facility *domain.Facility) error {
	if facility == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.facilities {
		if r.facilities[i].ID == facility.ID {
			facility.CreatedAt = r.facilities[i].CreatedAt
			facility.IsActive = r.facilities[i].IsActive
			facility.UpdatedAt = time.Now()
			r.facilities[i] = *facility
			return nil
		}
	}
	return domain.ErrFacilityNotFound
}

func (r *FacilityRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.facilities {
		if r.facilities[i].ID == id {
			r.facilities[i].IsActive = false
			r.facilities[i].IsPrimary = false
			r.facilities[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrFacilityNotFound
}

func (r *FacilityRepository) SetPrimary(_ context.Context, clientID, facilityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := -1
	for i := range r.facilities {
		if r.facilities[i].ID == facilityID && r.facilities[i].ClientID == clientID && r.facilities[i].IsActive {
			target = i
			break
		}
	}
	if target < 0 {
		return domain.ErrFacilityNotFound
	}
	for i := range r.facilities {
		if r.facilities[i].ClientID == clientID && r.facilities[i].IsPrimary {
			r.facilities[i].IsPrimary = false
			r.facilities[i].UpdatedAt = time.Now()
		}
	}
	r.facilities[target].IsPrimary = true
	r.facilities[target].UpdatedAt = time.Now()
	return nil
}
