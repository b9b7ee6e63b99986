package facility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository/memory"
)

type FacilitySuite struct {
	suite.Suite
	facilities *memory.FacilityRepository
	clients    *memory.ClientRepository
	uc         *UseCase
	ctx        context.Context
	clientID   string
}

func TestFacilitySuite(t *testing.T) {
	suite.Run(t, new(FacilitySuite))
}

func (s *FacilitySuite) SetupTest() {
	s.facilities = memory.NewFacilityRepository()
	s.clients = memory.NewClientRepository()
	s.uc = New(s.facilities, s.clients, nil)
	s.ctx = context.Background()

	client, err := s.clients.Create(s.ctx, &domain.Client{BusinessName: "ACME Robotics"})
	s.Require().NoError(err)
	s.clientID = client.ID
}

func (s *FacilitySuite) create(name string) *domain.Facility {
	created, err := s.uc.Create(s.ctx, &domain.Facility{
		ClientID: s.clientID,
		Name:     name,
		Address: domain.Address{
			Street:     "Via Roma 1",
			City:       "Torino",
			PostalCode: "10100",
			Country:    "IT",
		},
	})
	s.Require().NoError(err)
	return created
}

func (s *FacilitySuite) activePrimaries() []domain.Facility {
	facilities, err := s.facilities.ListByClient(s.ctx, s.clientID, true)
	s.Require().NoError(err)
	var out []domain.Facility
	for _, f := range facilities {
		if f.IsPrimary {
			out = append(out, f)
		}
	}
	return out
}

func (s *FacilitySuite) TestFirstFacilityBecomesPrimary() {
	first := s.create("Main Plant")
	s.True(first.IsPrimary)

	second := s.create("North Warehouse")
	s.False(second.IsPrimary)

	s.Len(s.activePrimaries(), 1)
}

func (s *FacilitySuite) TestIncompleteAddressRejected() {
	_, err := s.uc.Create(s.ctx, &domain.Facility{
		ClientID: s.clientID,
		Name:     "Main Plant",
		Address:  domain.Address{Street: "Via Roma 1"},
	})
	s.Require().Error(err)
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func (s *FacilitySuite) TestNameUniqueWithinClient() {
	s.create("Main Plant")

	_, err := s.uc.Create(s.ctx, &domain.Facility{
		ClientID: s.clientID,
		Name:     "main plant",
		Address: domain.Address{
			Street:     "Via Po 2",
			City:       "Torino",
			PostalCode: "10100",
			Country:    "IT",
		},
	})
	s.Require().Error(err)
	s.True(domain.IsDomainError(err, domain.ErrCodeConflict))

	// The same name under a different client is fine.
	other, err := s.clients.Create(s.ctx, &domain.Client{BusinessName: "Beta Srl"})
	s.Require().NoError(err)
	_, err = s.uc.Create(s.ctx, &domain.Facility{
		ClientID: other.ID,
		Name:     "Main Plant",
		Address: domain.Address{
			Street:     "Via Po 2",
			City:       "Torino",
			PostalCode: "10100",
			Country:    "IT",
		},
	})
	s.NoError(err)
}

func (s *FacilitySuite) TestDemotionPromotesSubstitute() {
	first := s.create("Main Plant")
	second := s.create("North Warehouse")

	first.IsPrimary = false
	_, err := s.uc.Update(s.ctx, first)
	s.Require().NoError(err)

	primaries := s.activePrimaries()
	s.Require().Len(primaries, 1)
	s.Equal(second.ID, primaries[0].ID)
}

func (s *FacilitySuite) TestSolePrimaryCannotBeDemoted() {
	only := s.create("Main Plant")

	only.IsPrimary = false
	_, err := s.uc.Update(s.ctx, only)
	s.Require().Error(err)
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
}

func (s *FacilitySuite) TestDeactivatePrimaryReassignsFlag() {
	first := s.create("Main Plant")
	second := s.create("North Warehouse")

	s.Require().NoError(s.uc.Deactivate(s.ctx, first.ID))

	primaries := s.activePrimaries()
	s.Require().Len(primaries, 1)
	s.Equal(second.ID, primaries[0].ID)
}
