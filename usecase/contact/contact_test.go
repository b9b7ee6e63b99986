package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository/memory"
	"github.com/qreport/backend/usecase/listing"
)

type ContactSuite struct {
	suite.Suite
	contacts *memory.ContactRepository
	clients  *memory.ClientRepository
	uc       *UseCase
	ctx      context.Context
	clientID string
}

func TestContactSuite(t *testing.T) {
	suite.Run(t, new(ContactSuite))
}

func (s *ContactSuite) SetupTest() {
	s.contacts = memory.NewContactRepository()
	s.clients = memory.NewClientRepository()
	s.uc = New(s.contacts, s.clients, nil, nil)
	s.ctx = context.Background()

	client, err := s.clients.Create(s.ctx, &domain.Client{BusinessName: "ACME Robotics"})
	s.Require().NoError(err)
	s.clientID = client.ID
}

func (s *ContactSuite) create(name, email, phone string) *domain.Contact {
	created, err := s.uc.Create(s.ctx, &domain.Contact{
		ClientID: s.clientID,
		FullName: name,
		Email:    email,
		Phone:    phone,
	})
	s.Require().NoError(err)
	return created
}

func (s *ContactSuite) activePrimaries() []domain.Contact {
	contacts, err := s.contacts.ListByClient(s.ctx, s.clientID, true)
	s.Require().NoError(err)
	var out []domain.Contact
	for _, c := range contacts {
		if c.IsPrimary {
			out = append(out, c)
		}
	}
	return out
}

func (s *ContactSuite) TestFirstContactBecomesPrimary() {
	first := s.create("Anna Bianchi", "anna@example.com", "")
	s.True(first.IsPrimary)

	second := s.create("Marco Verdi", "marco@example.com", "")
	s.False(second.IsPrimary)

	s.Len(s.activePrimaries(), 1)
}

func (s *ContactSuite) TestCreateRequiresExistingClient() {
	_, err := s.uc.Create(s.ctx, &domain.Contact{
		ClientID: "missing-client",
		FullName: "Anna Bianchi",
	})
	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrClientNotFound)
}

func (s *ContactSuite) TestUniquenessConflicts() {
	s.create("Anna Bianchi", "anna@example.com", "555-0101")

	s.Run("duplicate email rejected", func() {
		_, err := s.uc.Create(s.ctx, &domain.Contact{
			ClientID: s.clientID,
			FullName: "Other Person",
			Email:    "ANNA@example.com",
		})
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeConflict))
	})

	s.Run("duplicate phone rejected", func() {
		_, err := s.uc.Create(s.ctx, &domain.Contact{
			ClientID: s.clientID,
			FullName: "Other Person",
			Phone:    "555-0101",
		})
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeConflict))
	})

	s.Run("updating own record keeps own email", func() {
		contacts, err := s.contacts.ListByClient(s.ctx, s.clientID, true)
		s.Require().NoError(err)
		own := contacts[0]
		own.Role = "Plant Manager"
		_, err = s.uc.Update(s.ctx, &own)
		s.NoError(err)
	})
}

func (s *ContactSuite) TestPromotionMovesFlag() {
	first := s.create("Anna Bianchi", "anna@example.com", "")
	second := s.create("Marco Verdi", "marco@example.com", "")

	second.IsPrimary = true
	updated, err := s.uc.Update(s.ctx, second)
	s.Require().NoError(err)
	s.True(updated.IsPrimary)

	primaries := s.activePrimaries()
	s.Require().Len(primaries, 1)
	s.Equal(second.ID, primaries[0].ID)

	reloaded, err := s.contacts.GetByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.False(reloaded.IsPrimary)
}

func (s *ContactSuite) TestDemotionNeedsSubstitute() {
	only := s.create("Anna Bianchi", "anna@example.com", "")

	s.Run("sole primary cannot be demoted", func() {
		only.IsPrimary = false
		_, err := s.uc.Update(s.ctx, only)
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
	})

	s.Run("demotion promotes a substitute", func() {
		other := s.create("Marco Verdi", "marco@example.com", "")

		only.IsPrimary = false
		_, err := s.uc.Update(s.ctx, only)
		s.Require().NoError(err)

		primaries := s.activePrimaries()
		s.Require().Len(primaries, 1)
		s.Equal(other.ID, primaries[0].ID)
	})
}

func (s *ContactSuite) TestDeactivatePrimary() {
	first := s.create("Anna Bianchi", "anna@example.com", "")

	s.Run("last active primary cannot be deactivated", func() {
		err := s.uc.Deactivate(s.ctx, first.ID)
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
	})

	s.Run("substitute takes over on deactivation", func() {
		second := s.create("Marco Verdi", "marco@example.com", "")

		s.Require().NoError(s.uc.Deactivate(s.ctx, first.ID))

		primaries := s.activePrimaries()
		s.Require().Len(primaries, 1)
		s.Equal(second.ID, primaries[0].ID)
	})
}

func (s *ContactSuite) TestClientReassignmentRejected() {
	contact := s.create("Anna Bianchi", "anna@example.com", "")
	other, err := s.clients.Create(s.ctx, &domain.Client{BusinessName: "Other Spa"})
	s.Require().NoError(err)

	contact.ClientID = other.ID
	_, err = s.uc.Update(s.ctx, contact)
	s.Require().Error(err)
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
}

func (s *ContactSuite) TestBulkDelete() {
	first := s.create("Anna Bianchi", "anna@example.com", "")
	second := s.create("Marco Verdi", "marco@example.com", "")
	third := s.create("Luca Neri", "luca@example.com", "")

	result := s.uc.BulkDelete(s.ctx, []string{second.ID, "missing-id", third.ID})
	s.Equal(2, result.SuccessCount)
	s.Equal(1, result.FailureCount)
	s.Require().Len(result.Errors, 1)
	s.Equal("missing-id", result.Errors[0].ID)
	s.False(result.AllFailed())

	// The primary survived, so the flag did not move.
	primaries := s.activePrimaries()
	s.Require().Len(primaries, 1)
	s.Equal(first.ID, primaries[0].ID)
}

func (s *ContactSuite) TestListPipeline() {
	s.create("Anna Bianchi", "anna@example.com", "")
	s.create("Marco Verdi", "marco.v@example.com", "")

	s.Run("short query matches name only", func() {
		out, err := s.uc.List(s.ctx, s.clientID, listing.ContactQuery{Query: "an"})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("Anna Bianchi", out[0].FullName)
	})

	s.Run("long query also matches email", func() {
		out, err := s.uc.List(s.ctx, s.clientID, listing.ContactQuery{Query: "example.com"})
		s.Require().NoError(err)
		s.Len(out, 2)
	})
}
