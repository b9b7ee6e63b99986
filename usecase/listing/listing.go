// Package listing implements the list projection pipeline shared by the
// contact and intervention screens. The pipeline order is fixed: status
// filter, then text search, then sort. Projections are recomputed from the
// full collection on every change; there is no incremental indexing.
package listing

import (
	"sort"
	"strings"

	"github.com/qreport/backend/domain"
)

// ContactSort selects the comparator applied after filtering.
type ContactSort string

const (
	SortName          ContactSort = "NAME"
	SortCreatedRecent ContactSort = "CREATED_RECENT"
	SortCreatedOldest ContactSort = "CREATED_OLDEST"
)

type ContactQuery struct {
	Query      string
	ActiveOnly bool
	Sort       ContactSort
}

// Contacts runs the fixed filter -> search -> sort pipeline over the full
// contact collection and returns the projection.
func Contacts(in []domain.Contact, q ContactQuery) []domain.Contact {
	out := make([]domain.Contact, 0, len(in))
	for _, c := range in {
		if q.ActiveOnly && !c.IsActive {
			continue
		}
		if !c.MatchesQuery(q.Query) {
			continue
		}
		out = append(out, c)
	}

	switch q.Sort {
	case SortCreatedRecent:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortCreatedOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	default:
		// NAME: primary first, then case-insensitive name.
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].IsPrimary != out[j].IsPrimary {
				return out[i].IsPrimary
			}
			return strings.ToLower(out[i].FullName) < strings.ToLower(out[j].FullName)
		})
	}
	return out
}

type InterventionQuery struct {
	Status domain.InterventionStatus
	Query  string
	Oldest bool
}

// Interventions applies the same pipeline shape to intervention lists:
// status filter, then case-insensitive substring search over customer name
// and description, then a created-at sort (recent first by default).
func Interventions(in []domain.TechnicalIntervention, q InterventionQuery) []domain.TechnicalIntervention {
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	out := make([]domain.TechnicalIntervention, 0, len(in))
	for _, iv := range in {
		if q.Status != "" && iv.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(iv.CustomerData.CompanyName), needle) &&
			!strings.Contains(strings.ToLower(iv.InterventionDescription), needle) {
			continue
		}
		out = append(out, iv)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if q.Oldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
