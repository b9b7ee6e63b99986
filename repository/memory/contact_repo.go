package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qreport/backend/domain"
)

type ContactRepository struct {
	mu       sync.RWMutex
	contacts []domain.Contact
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) GetByID(_ context.Context, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			c := r.contacts[i]
			return &c, nil
		}
	}
	return nil, domain.ErrContactNotFound
}

func (r *ContactRepository) ListByClient(_ context.Context, clientID string, activeOnly bool) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Contact
	for _, c := range r.contacts {
		if c.ClientID != clientID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ContactRepository) Create(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now()
	contact.IsActive = true
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.contacts = append(r.contacts, *contact)
	return contact, nil
}

func (r *ContactRepository) Update(_ context.Context, contact *domain.Contact) error {
	if contact == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == contact.ID {
			contact.CreatedAt = r.contacts[i].CreatedAt
			contact.IsActive = r.contacts[i].IsActive
			contact.UpdatedAt = time.Now()
			r.contacts[i] = *contact
			return nil
		}
	}
	return domain.ErrContactNotFound
}

func (r *ContactRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts[i].IsActive = false
			r.contacts[i].IsPrimary = false
			r.contacts[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrContactNotFound
}

func (r *ContactRepository) SetPrimary(_ context.Context, clientID, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := -1
	for i := range r.contacts {
		if r.contacts[i].ID == contactID && r.contacts[i].ClientID == clientID && r.contacts[i].IsActive {
			target = i
			break
		}
	}
	if target < 0 {
		return domain.ErrContactNotFound
	}
	for i := range r.contacts {
		if r.contacts[i].ClientID == clientID && r.contacts[i].IsPrimary {
			r.contacts[i].IsPrimary = false
			r.contacts[i].UpdatedAt = time.Now()
		}
	}
	r.contacts[target].IsPrimary = true
	r.contacts[target].UpdatedAt = time.Now()
	return nil
}

func (r *ContactRepository) FindByEmail(_ context.Context, email, excludeID string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.contacts {
		c := r.contacts[i]
		if c.ID == excludeID {
			continue
		}
		if c.Email != "" && strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, domain.ErrContactNotFound
}

func (r *ContactRepository) FindByPhone(_ context.Context, phone, excludeID string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.contacts {
		c := r.contacts[i]
		if c.ID == excludeID {
			continue
		}
		if (c.Phone != "" && c.Phone == phone) || (c.MobilePhone != "" && c.MobilePhone == phone) {
			return &c, nil
		}
	}
	return nil, domain.ErrContactNotFound
}
