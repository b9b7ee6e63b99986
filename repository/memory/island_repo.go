package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qreport/backend/domain"
)

type IslandRepository struct {
	mu      sync.RWMutex
	islands []domain.Island
}

func NewIslandRepository() *IslandRepository {
	return &IslandRepository{}
}

func (r *IslandRepository) GetByID(_ context.Context, id string) (*domain.Island, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.islands {
		if r.islands[i].ID == id {
			isl := r.islands[i]
			return &isl, nil
		}
	}
	return nil, domain.ErrIslandNotFound
}

func (r *IslandRepository) ListByFacility(_ context.Context, facilityID string, activeOnly bool) ([]domain.Island, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Island
	for _, isl := range r.islands {
		if isl.FacilityID != facilityID {
			continue
		}
		if activeOnly && !isl.IsActive {
			continue
		}
		out = append(out, isl)
	}
	return out, nil
}

func (r *IslandRepository) Create(_ context.Context, island *domain.Island) (*domain.Island, error) {
	if island == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if island.ID == "" {
		island.ID = uuid.NewString()
	}
	now := time.Now()
	island.IsActive = true
	island.CreatedAt = now
	island.UpdatedAt = now
	r.islands = append(r.islands, *island)
	return island, nil
}

func (r *IslandRepository) Update(_ context.Context, island *domain.Island) error {
	if island == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.islands {
		if r.islands[i].ID == island.ID {
			island.CreatedAt = r.islands[i].CreatedAt
			island.IsActive = r.islands[i].IsActive
			island.UpdatedAt = time.Now()
			r.islands[i] = *island
			return nil
		}
	}
	return domain.ErrIslandNotFound
}

func (r *IslandRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.islands {
		if r.islands[i].ID == id {
			r.islands[i].IsActive = false
			r.islands[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrIslandNotFound
}
