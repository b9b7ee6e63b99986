// Package memory provides mutex-guarded in-memory repository implementations.
// They back the use-case tests and keep insertion order, which satisfies the
// stable (created_at, id) ordering contract of the persistent repositories.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

type ClientRepository struct {
	mu      sync.RWMutex
	clients []domain.Client
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.clients {
		if r.clients[i].ID == id {
			c := r.clients[i]
			return &c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *ClientRepository) List(_ context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Client
	q := strings.ToLower(filter.Query)
	for _, c := range r.clients {
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.BusinessName), q) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ClientRepository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	now := time.Now()
	client.IsActive = true
	client.CreatedAt = now
	client.UpdatedAt = now
	r.clients = append(r.clients, *client)
	return client, nil
}

func (r *ClientRepository) Update(_ context.Context, client *domain.Client) error {
	if client == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clients {
		if r.clients[i].ID == client.ID {
			client.CreatedAt = r.clients[i].CreatedAt
			client.IsActive = r.clients[i].IsActive
			client.UpdatedAt = time.Now()
			r.clients[i] = *client
			return nil
		}
	}
	return domain.ErrClientNotFound
}

func (r *ClientRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients[i].IsActive = false
			r.clients[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrClientNotFound
}
