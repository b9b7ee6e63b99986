package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type InterventionRepository struct {
	mu            sync.RWMutex
	interventions []domain.TechnicalIntervention

	// FailDelete and FailUpdate make the listed ids error, so tests can
	// exercise partial-failure batch summaries and save aborts.
	FailDelete map[string]error
	FailUpdate map[string]error

	updateCalls int
}

func NewInterventionRepository() *InterventionRepository {
	return &InterventionRepository{
		FailDelete: make(map[string]error),
		FailUpdate: make(map[string]error),
	}
}

// UpdateCalls reports how many persistence writes went through Update.
func (r *InterventionRepository) UpdateCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updateCalls
}

func (r *InterventionRepository) GetByID(_ context.Context, id string) (*domain.TechnicalIntervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.interventions {
		if r.interventions[i].ID == id {
			iv := r.interventions[i]
			return &iv, nil
		}
	}
	return nil, domain.ErrInterventionNotFound
}

func (r *InterventionRepository) List(_ context.Context, filter repository.InterventionFilter) ([]domain.TechnicalIntervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.TechnicalIntervention
	for _, iv := range r.interventions {
		if filter.Status != "" && iv.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && iv.CustomerData.ClientID != filter.ClientID {
			continue
		}
		if filter.Technician != "" && !containsString(iv.Technicians, filter.Technician) {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

func (r *InterventionRepository) Create(_ context.Context, iv *domain.TechnicalIntervention) (*domain.TechnicalIntervention, error) {
	if iv == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	if iv.Status == "" {
		iv.Status = domain.StatusDraft
	}
	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	r.interventions = append(r.interventions, *iv)
	return iv, nil
}

func (r *InterventionRepository) Update(_ context.Context, iv *domain.TechnicalIntervention) error {
	if iv == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if err, ok := r.FailUpdate[iv.ID]; ok {
		return err
	}
	for i := range r.interventions {
		if r.interventions[i].ID == iv.ID {
			iv.CreatedAt = r.interventions[i].CreatedAt
			iv.UpdatedAt = time.Now()
			r.interventions[i] = *iv
			return nil
		}
	}
	return domain.ErrInterventionNotFound
}

func (r *InterventionRepository) UpdateStatus(_ context.Context, id string, status domain.InterventionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.FailUpdate[id]; ok {
		return err
	}
	for i := range r.interventions {
		if r.interventions[i].ID == id {
			r.interventions[i].Status = status
			r.interventions[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrInterventionNotFound
}

func (r *InterventionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.FailDelete[id]; ok {
		return err
	}
	for i := range r.interventions {
		if r.interventions[i].ID == id {
			r.interventions = append(r.interventions[:i], r.interventions[i+1:]...)
			return nil
		}
	}
	return domain.ErrInterventionNotFound
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
