package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
)

type ListingSuite struct {
	suite.Suite
	contacts []domain.Contact
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(ListingSuite))
}

func (s *ListingSuite) SetupTest() {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.contacts = []domain.Contact{
		{
			ID:        "c-1",
			FullName:  "Anna Bianchi",
			Email:     "anna@example.com",
			Role:      "Plant Manager",
			IsPrimary: false,
			IsActive:  true,
			CreatedAt: base,
		},
		{
			ID:        "c-2",
			FullName:  "Marco Verdi",
			Email:     "an@acme.example",
			IsPrimary: true,
			IsActive:  true,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID:        "c-3",
			FullName:  "Luca Neri",
			Phone:     "555-0101",
			IsPrimary: false,
			IsActive:  false,
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func (s *ListingSuite) names(in []domain.Contact) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.FullName)
	}
	return out
}

func (s *ListingSuite) TestShortQueryMatchesNameOnly() {
	// "an" is in "Anna Bianchi" and in Marco's email, but a two-character
	// query searches names only.
	out := Contacts(s.contacts, ContactQuery{Query: "an"})
	s.Equal([]string{"Anna Bianchi"}, s.names(out))
}

func (s *ListingSuite) TestLongQuerySearchesAllFields() {
	s.Run("email", func() {
		out := Contacts(s.contacts, ContactQuery{Query: "an@"})
		s.Equal([]string{"Marco Verdi"}, s.names(out))
	})

	s.Run("phone", func() {
		out := Contacts(s.contacts, ContactQuery{Query: "555-01"})
		s.Equal([]string{"Luca Neri"}, s.names(out))
	})

	s.Run("role", func() {
		out := Contacts(s.contacts, ContactQuery{Query: "plant"})
		s.Equal([]string{"Anna Bianchi"}, s.names(out))
	})
}

func (s *ListingSuite) TestActiveOnlyFilterRunsBeforeSearch() {
	out := Contacts(s.contacts, ContactQuery{Query: "555-0101", ActiveOnly: true})
	s.Empty(out)
}

func (s *ListingSuite) TestNameSortPutsPrimaryFirst() {
	out := Contacts(s.contacts, ContactQuery{Sort: SortName})
	s.Equal([]string{"Marco Verdi", "Anna Bianchi", "Luca Neri"}, s.names(out))
}

func (s *ListingSuite) TestCreatedSorts() {
	s.Run("recent first", func() {
		out := Contacts(s.contacts, ContactQuery{Sort: SortCreatedRecent})
		s.Equal([]string{"Luca Neri", "Marco Verdi", "Anna Bianchi"}, s.names(out))
	})

	s.Run("oldest first", func() {
		out := Contacts(s.contacts, ContactQuery{Sort: SortCreatedOldest})
		s.Equal([]string{"Anna Bianchi", "Marco Verdi", "Luca Neri"}, s.names(out))
	})
}

func (s *ListingSuite) TestInterventionPipeline() {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	interventions := []domain.TechnicalIntervention{
		{
			ID:           "i-1",
			CustomerData: domain.CustomerData{CompanyName: "ACME Robotics"},
			Status:       domain.StatusDraft,
			CreatedAt:    base,
		},
		{
			ID:                      "i-2",
			CustomerData:            domain.CustomerData{CompanyName: "Beta Packaging"},
			InterventionDescription: "acme spare parts",
			Status:                  domain.StatusInProgress,
			CreatedAt:               base.Add(time.Hour),
		},
		{
			ID:           "i-3",
			CustomerData: domain.CustomerData{CompanyName: "ACME Robotics"},
			Status:       domain.StatusInProgress,
			CreatedAt:    base.Add(2 * time.Hour),
		},
	}

	s.Run("status filter then search", func() {
		out := Interventions(interventions, InterventionQuery{
			Status: domain.StatusInProgress,
			Query:  "acme",
		})
		s.Require().Len(out, 2)
		// Description matches count too; recent first by default.
		s.Equal("i-3", out[0].ID)
		s.Equal("i-2", out[1].ID)
	})

	s.Run("oldest flag flips the sort", func() {
		out := Interventions(interventions, InterventionQuery{Oldest: true})
		s.Require().Len(out, 3)
		s.Equal("i-1", out[0].ID)
	})
}
