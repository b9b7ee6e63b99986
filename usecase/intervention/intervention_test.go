package intervention

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
	"github.com/qreport/backend/repository/memory"
	"github.com/qreport/backend/usecase/listing"
)

type InterventionSuite struct {
	suite.Suite
	repo *memory.InterventionRepository
	uc   *UseCase
	ctx  context.Context
}

func TestInterventionSuite(t *testing.T) {
	suite.Run(t, new(InterventionSuite))
}

func (s *InterventionSuite) SetupTest() {
	s.repo = memory.NewInterventionRepository()
	s.uc = New(s.repo, nil, nil, false)
	s.ctx = context.Background()
}

func (s *InterventionSuite) create(company string, status domain.InterventionStatus) *domain.TechnicalIntervention {
	created, err := s.uc.Create(s.ctx, &domain.TechnicalIntervention{
		CustomerData: domain.CustomerData{CompanyName: company},
		Status:       status,
	})
	s.Require().NoError(err)
	return created
}

func (s *InterventionSuite) TestCreateDefaultsToDraft() {
	created, err := s.uc.Create(s.ctx, &domain.TechnicalIntervention{
		CustomerData: domain.CustomerData{CompanyName: "ACME Robotics"},
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, created.Status)
}

func (s *InterventionSuite) TestChangeStatus() {
	iv := s.create("ACME Robotics", domain.StatusDraft)

	s.Run("legal edge succeeds", func() {
		s.Require().NoError(s.uc.ChangeStatus(s.ctx, iv.ID, domain.StatusInProgress))
		reloaded, err := s.repo.GetByID(s.ctx, iv.ID)
		s.Require().NoError(err)
		s.Equal(domain.StatusInProgress, reloaded.Status)
	})

	s.Run("same state is a no-op success", func() {
		s.NoError(s.uc.ChangeStatus(s.ctx, iv.ID, domain.StatusInProgress))
	})

	s.Run("illegal edge fails", func() {
		completed := s.create("Beta Srl", domain.StatusCompleted)
		err := s.uc.ChangeStatus(s.ctx, completed.ID, domain.StatusInProgress)
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
	})

	s.Run("unknown status rejected", func() {
		err := s.uc.ChangeStatus(s.ctx, iv.ID, domain.InterventionStatus("BROKEN"))
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalid))
	})
}

func (s *InterventionSuite) TestDebugModeBypassesTransitions() {
	debug := New(s.repo, nil, nil, true)
	iv := s.create("ACME Robotics", domain.StatusCompleted)

	s.NoError(debug.ChangeStatus(s.ctx, iv.ID, domain.StatusInProgress))
}

func (s *InterventionSuite) TestUpdateValidatesTransition() {
	iv := s.create("ACME Robotics", domain.StatusDraft)

	iv.Status = domain.StatusCompleted
	_, err := s.uc.Update(s.ctx, iv)
	s.Require().Error(err)
	s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))

	iv.Status = domain.StatusInProgress
	updated, err := s.uc.Update(s.ctx, iv)
	s.Require().NoError(err)
	s.Equal(domain.StatusInProgress, updated.Status)
}

func (s *InterventionSuite) TestChangeStatusBatchPartialFailure() {
	a := s.create("A Spa", domain.StatusDraft)
	b := s.create("B Spa", domain.StatusCompleted)
	c := s.create("C Spa", domain.StatusDraft)

	result := s.uc.ChangeStatusBatch(s.ctx, []string{a.ID, b.ID, c.ID}, domain.StatusInProgress)
	s.Equal(2, result.SuccessCount)
	s.Equal(1, result.FailureCount)
	s.Equal(3, result.Total())
	s.Require().Len(result.Errors, 1)
	s.Equal(b.ID, result.Errors[0].ID)
	s.False(result.AllFailed())
}

func (s *InterventionSuite) TestChangeStatusBatchAllFailed() {
	a := s.create("A Spa", domain.StatusCompleted)
	b := s.create("B Spa", domain.StatusArchived)

	result := s.uc.ChangeStatusBatch(s.ctx, []string{a.ID, b.ID}, domain.StatusPendingReview)
	s.True(result.AllFailed())
	s.Equal(2, result.FailureCount)
}

func (s *InterventionSuite) TestDelete() {
	s.Run("draft deletes", func() {
		iv := s.create("ACME Robotics", domain.StatusDraft)
		s.Require().NoError(s.uc.Delete(s.ctx, iv.ID, false))
		_, err := s.repo.GetByID(s.ctx, iv.ID)
		s.ErrorIs(err, domain.ErrInterventionNotFound)
	})

	s.Run("completed is protected", func() {
		iv := s.create("ACME Robotics", domain.StatusCompleted)
		err := s.uc.Delete(s.ctx, iv.ID, false)
		s.Require().Error(err)
		s.True(domain.IsDomainError(err, domain.ErrCodeInvalidState))
	})

	s.Run("force deletes completed", func() {
		iv := s.create("ACME Robotics", domain.StatusCompleted)
		s.NoError(s.uc.Delete(s.ctx, iv.ID, true))
	})

	s.Run("debug mode deletes without force", func() {
		debug := New(s.repo, nil, nil, true)
		iv := s.create("ACME Robotics", domain.StatusArchived)
		s.NoError(debug.Delete(s.ctx, iv.ID, false))
	})
}

func (s *InterventionSuite) TestDeleteBatchIndependentItems() {
	a := s.create("A Spa", domain.StatusDraft)
	b := s.create("B Spa", domain.StatusDraft)
	c := s.create("C Spa", domain.StatusDraft)
	s.repo.FailDelete[b.ID] = domain.NewError(domain.ErrCodeInternal, "disk error")

	result := s.uc.DeleteBatch(s.ctx, []string{a.ID, b.ID, c.ID}, false)
	s.Equal(2, result.SuccessCount)
	s.Equal(1, result.FailureCount)
	s.Require().Len(result.Errors, 1)
	s.Equal(b.ID, result.Errors[0].ID)

	// The failing middle item did not stop its siblings.
	_, err := s.repo.GetByID(s.ctx, a.ID)
	s.ErrorIs(err, domain.ErrInterventionNotFound)
	_, err = s.repo.GetByID(s.ctx, c.ID)
	s.ErrorIs(err, domain.ErrInterventionNotFound)
}

func (s *InterventionSuite) TestListPipeline() {
	s.create("ACME Robotics", domain.StatusDraft)
	s.create("Beta Packaging", domain.StatusInProgress)
	s.create("ACME Robotics", domain.StatusInProgress)

	out, err := s.uc.List(s.ctx, repository.InterventionFilter{Status: domain.StatusInProgress}, listing.InterventionQuery{
		Status: domain.StatusInProgress,
		Query:  "acme",
	})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("ACME Robotics", out[0].CustomerData.CompanyName)
}
