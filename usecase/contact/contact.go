// Package contact implements contact CRUD together with the single-primary
// invariant: for every client at most one active contact carries the primary
// flag, and the flag is reassigned automatically on demotion or deactivation.
package contact

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
	"github.com/qreport/backend/usecase"
	"github.com/qreport/backend/usecase/listing"
)

type UseCase struct {
	contacts repository.ContactRepository
	clients  repository.ClientRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(contacts repository.ContactRepository, clients repository.ClientRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		contacts: contacts,
		clients:  clients,
		buffer:   buffer,
		logger:   logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return uc.contacts.GetByID(ctx, id)
}

// List returns the client's contacts filtered, searched and sorted through
// the fixed pipeline (status filter, then text search, then sort).
func (uc *UseCase) List(ctx context.Context, clientID string, query listing.ContactQuery) ([]domain.Contact, error) {
	contacts, err := uc.contacts.ListByClient(ctx, clientID, false)
	if err != nil {
		return nil, err
	}
	return listing.Contacts(contacts, query), nil
}

// Create validates the contact, enforces global email/phone uniqueness and
// promotes it to primary when the client has no active primary yet. The
// has-primary check and the insert are two separate statements; with a single
// writer per client that is safe, and the repository SetPrimary operation
// repairs the invariant on any later change.
func (uc *UseCase) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.clients.GetByID(ctx, contact.ClientID); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, contact, ""); err != nil {
		return nil, err
	}

	hasPrimary, err := uc.hasActivePrimary(ctx, contact.ClientID)
	if err != nil {
		return nil, err
	}
	if !hasPrimary {
		contact.IsPrimary = true
	}

	created, err := uc.contacts.Create(ctx, contact)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, contact, err) {
			return contact, nil
		}
		return nil, err
	}
	return created, nil
}

// Update rejects client reassignment and keeps the primary invariant intact:
// a promotion goes through the atomic SetPrimary, a demotion requires another
// active contact which is then promoted in its place.
func (uc *UseCase) Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if contact == nil || contact.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	old, err := uc.contacts.GetByID(ctx, contact.ID)
	if err != nil {
		return nil, err
	}
	if contact.ClientID != "" && contact.ClientID != old.ClientID {
		return nil, domain.NewError(domain.ErrCodeInvalidState, "contact cannot be moved to another client")
	}
	contact.ClientID = old.ClientID

	if err := contact.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, contact, contact.ID); err != nil {
		return nil, err
	}

	switch {
	case contact.IsPrimary && !old.IsPrimary:
		// Promotion: persist fields first, then atomically move the flag.
		contact.IsPrimary = false
		if err := uc.contacts.Update(ctx, contact); err != nil {
			return nil, err
		}
		if err := uc.contacts.SetPrimary(ctx, old.ClientID, contact.ID); err != nil {
			return nil, err
		}
		contact.IsPrimary = true

	case !contact.IsPrimary && old.IsPrimary:
		substitute, err := uc.firstOtherActive(ctx, old.ClientID, contact.ID)
		if err != nil {
			return nil, err
		}
		if err := uc.contacts.Update(ctx, contact); err != nil {
			return nil, err
		}
		if err := uc.contacts.SetPrimary(ctx, old.ClientID, substitute.ID); err != nil {
			return nil, err
		}

	default:
		if err := uc.contacts.Update(ctx, contact); err != nil {
			if uc.shouldBuffer(ctx, usecase.OperationUpdate, contact, err) {
				return contact, nil
			}
			return nil, err
		}
	}
	return contact, nil
}

// Deactivate soft-deletes the contact. A primary contact needs a substitute:
// the first other active contact of the client takes over the flag, otherwise
// the operation fails.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	old, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if old.IsPrimary && old.IsActive {
		substitute, err := uc.firstOtherActive(ctx, old.ClientID, id)
		if err != nil {
			return err
		}
		if err := uc.contacts.Deactivate(ctx, id); err != nil {
			return err
		}
		return uc.contacts.SetPrimary(ctx, old.ClientID, substitute.ID)
	}

	return uc.contacts.Deactivate(ctx, id)
}

// BulkDelete deactivates each contact independently and accumulates the
// per-item outcome. Sibling failures never abort the loop.
func (uc *UseCase) BulkDelete(ctx context.Context, ids []string) usecase.BatchResult {
	var result usecase.BatchResult
	for _, id := range ids {
		if err := uc.Deactivate(ctx, id); err != nil {
			uc.logger.Warn("contact bulk delete item failed",
				zap.String("contact_id", id), zap.Error(err))
			result.RecordFailure(id, err)
			continue
		}
		result.RecordSuccess()
	}
	return result
}

func (uc *UseCase) hasActivePrimary(ctx context.Context, clientID string) (bool, error) {
	contacts, err := uc.contacts.ListByClient(ctx, clientID, true)
	if err != nil {
		return false, err
	}
	for _, c := range contacts {
		if c.IsPrimary {
			return true, nil
		}
	}
	return false, nil
}

func (uc *UseCase) firstOtherActive(ctx context.Context, clientID, excludeID string) (*domain.Contact, error) {
	contacts, err := uc.contacts.ListByClient(ctx, clientID, true)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		if contacts[i].ID != excludeID {
			return &contacts[i], nil
		}
	}
	return nil, domain.NewError(domain.ErrCodeInvalidState, "cannot remove the last active primary contact")
}

// checkUnique enforces the global (not per-client) email and phone uniqueness.
func (uc *UseCase) checkUnique(ctx context.Context, contact *domain.Contact, excludeID string) error {
	if contact.Email != "" {
		_, err := uc.contacts.FindByEmail(ctx, contact.Email, excludeID)
		switch {
		case err == nil:
			return domain.NewError(domain.ErrCodeConflict, "email already used by another contact")
		case !errors.Is(err, domain.ErrContactNotFound):
			return err
		}
	}
	for _, phone := range []string{contact.Phone, contact.MobilePhone} {
		if phone == "" {
			continue
		}
		_, err := uc.contacts.FindByPhone(ctx, phone, excludeID)
		switch {
		case err == nil:
			return domain.NewError(domain.ErrCodeConflict, "phone number already used by another contact")
		case !errors.Is(err, domain.ErrContactNotFound):
			return err
		}
	}
	return nil
}

// shouldBuffer parks the operation in the offline buffer when the failure is
// a storage outage rather than a business-rule rejection.
func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, contact *domain.Contact, cause error) bool {
	if uc.buffer == nil || domain.IsClassified(cause) {
		return false
	}
	if err := uc.buffer.BufferContact(ctx, operation, contact); err != nil {
		uc.logger.Error("failed to buffer contact operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("contact operation buffered", zap.String("operation", operation), zap.Error(cause))
	return true
}
