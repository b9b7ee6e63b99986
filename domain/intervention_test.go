package domain

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type InterventionSuite struct {
	suite.Suite
}

func TestInterventionSuite(t *testing.T) {
	suite.Run(t, new(InterventionSuite))
}

func (s *InterventionSuite) TestStatusTransitions() {
	cases := []struct {
		from    InterventionStatus
		to      InterventionStatus
		allowed bool
	}{
		{StatusDraft, StatusInProgress, true},
		{StatusDraft, StatusArchived, true},
		{StatusDraft, StatusCompleted, false},
		{StatusDraft, StatusPendingReview, false},
		{StatusInProgress, StatusPendingReview, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusDraft, true},
		{StatusInProgress, StatusArchived, true},
		{StatusPendingReview, StatusInProgress, true},
		{StatusPendingReview, StatusCompleted, true},
		{StatusPendingReview, StatusDraft, true},
		{StatusPendingReview, StatusArchived, false},
		{StatusCompleted, StatusArchived, true},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusDraft, false},
		{StatusArchived, StatusInProgress, true},
		{StatusArchived, StatusDraft, false},
		{StatusArchived, StatusCompleted, false},
	}

	for _, tc := range cases {
		s.Equal(tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func (s *InterventionSuite) TestSameStateTransitionAllowed() {
	for from := range statusTransitions {
		s.True(from.CanTransitionTo(from), "%s -> %s", from, from)
	}
}

func (s *InterventionSuite) TestStatusValidity() {
	s.True(StatusDraft.IsValid())
	s.True(StatusArchived.IsValid())
	s.False(InterventionStatus("DELETED").IsValid())
	s.False(InterventionStatus("").IsValid())
}

func (s *InterventionSuite) TestValidate() {
	s.Run("company name required", func() {
		iv := &TechnicalIntervention{}
		err := iv.Validate()
		s.Require().Error(err)
		s.True(IsDomainError(err, ErrCodeInvalid))
	})

	s.Run("technician cap enforced", func() {
		iv := &TechnicalIntervention{
			CustomerData: CustomerData{CompanyName: "ACME Robotics"},
			Technicians:  make([]string, MaxTechnicians+1),
		}
		err := iv.Validate()
		s.Require().Error(err)
		s.True(IsDomainError(err, ErrCodeInvalid))
	})

	s.Run("valid intervention passes", func() {
		iv := &TechnicalIntervention{
			CustomerData: CustomerData{CompanyName: "ACME Robotics"},
			Status:       StatusDraft,
		}
		s.NoError(iv.Validate())
	})
}

func (s *InterventionSuite) TestDeleteEligibility() {
	s.Run("draft is deletable", func() {
		iv := &TechnicalIntervention{Status: StatusDraft}
		s.NoError(iv.DeleteEligibility(false))
	})

	s.Run("completed is protected", func() {
		iv := &TechnicalIntervention{Status: StatusCompleted}
		err := iv.DeleteEligibility(false)
		s.Require().Error(err)
		s.True(IsDomainError(err, ErrCodeInvalidState))
	})

	s.Run("archived is protected", func() {
		iv := &TechnicalIntervention{Status: StatusArchived}
		s.Error(iv.DeleteEligibility(false))
	})

	s.Run("pending review requires confirmation", func() {
		iv := &TechnicalIntervention{Status: StatusPendingReview}
		s.Error(iv.DeleteEligibility(false))
		s.NoError(iv.DeleteEligibility(true))
	})

	s.Run("force overrides protection", func() {
		iv := &TechnicalIntervention{Status: StatusCompleted}
		s.NoError(iv.DeleteEligibility(true))
	})
}
