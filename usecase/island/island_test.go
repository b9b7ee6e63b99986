package island

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository/memory"
)

type IslandSuite struct {
	suite.Suite
	islands    *memory.IslandRepository
	facilities *memory.FacilityRepository
	uc         *UseCase
	ctx        context.Context
	facilityID string
}

func TestIslandSuite(t *testing.T) {
	suite.Run(t, new(IslandSuite))
}

func (s *IslandSuite) SetupTest() {
	s.islands = memory.NewIslandRepository()
	s.facilities = memory.NewFacilityRepository()
	s.uc = New(s.islands, s.facilities, nil)
	s.ctx = context.Background()

	facility, err := s.facilities.Create(s.ctx, &domain.Facility{
		ClientID: "client-1",
		Name:     "Main Plant",
		Address: domain.Address{
			Street:     "Via Roma 1",
			City:       "Torino",
			PostalCode: "10100",
			Country:    "IT",
		},
	})
	s.Require().NoError(err)
	s.facilityID = facility.ID
}

func (s *IslandSuite) create(name, serial string) *domain.Island {
	created, err := s.uc.Create(s.ctx, &domain.Island{
		FacilityID:   s.facilityID,
		Name:         name,
		SerialNumber: serial,
	})
	s.Require().NoError(err)
	return created
}

func (s *IslandSuite) TestCreateRequiresExistingFacility() {
	_, err := s.uc.Create(s.ctx, &domain.Island{
		FacilityID:   "missing-facility",
		Name:         "Cell A",
		SerialNumber: "SN-001",
	})
	s.True(domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func (s *IslandSuite) TestCreateValidatesPayload() {
	_, err := s.uc.Create(s.ctx, &domain.Island{
		FacilityID: s.facilityID,
		Name:       "Cell A",
	})
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func (s *IslandSuite) TestUpdateKeepsFacilityBinding() {
	created := s.create("Cell A", "SN-001")

	created.FacilityID = "another-facility"
	_, err := s.uc.Update(s.ctx, created)
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
}

func (s *IslandSuite) TestUpdateRenames() {
	created := s.create("Cell A", "SN-001")

	created.Name = "Cell A bis"
	updated, err := s.uc.Update(s.ctx, created)
	s.Require().NoError(err)
	s.Equal("Cell A bis", updated.Name)

	fetched, err := s.uc.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Cell A bis", fetched.Name)
}

func (s *IslandSuite) TestListByFacilityFiltersInactive() {
	first := s.create("Cell A", "SN-001")
	s.create("Cell B", "SN-002")

	s.Require().NoError(s.uc.Deactivate(s.ctx, first.ID))

	active, err := s.uc.ListByFacility(s.ctx, s.facilityID, true)
	s.Require().NoError(err)
	s.Len(active, 1)
	s.Equal("Cell B", active[0].Name)

	all, err := s.uc.ListByFacility(s.ctx, s.facilityID, false)
	s.Require().NoError(err)
	s.Len(all, 2)
}
