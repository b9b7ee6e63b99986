package editor

import (
	"strings"

	"github.com/qreport/backend/domain"
)

// Tab identifies one of the four sub-forms of the intervention editor.
type Tab string

const (
	TabGeneral    Tab = "GENERAL"
	TabDetails    Tab = "DETAILS"
	TabWorkDays   Tab = "WORK_DAYS"
	TabSignatures Tab = "SIGNATURES"
)

func (t Tab) IsValid() bool {
	switch t {
	case TabGeneral, TabDetails, TabWorkDays, TabSignatures:
		return true
	}
	return false
}

// tabState is one sub-form: a draft, a last-saved snapshot, a permissive
// save-time validation, and a merge into the shared aggregate.
type tabState interface {
	dirty() bool
	saveValidate() error
	apply(iv *domain.TechnicalIntervention)
	commit()
}

// GeneralData is the draft of the General tab.
type GeneralData struct {
	CustomerData domain.CustomerData `json:"customer_data"`
	RobotData    domain.RobotData    `json:"robot_data"`
	WorkLocation domain.WorkLocation `json:"work_location"`
}

type generalState struct {
	draft    GeneralData
	original GeneralData
}

func (s *generalState) dirty() bool { return s.draft != s.original }

// Save-time rules are looser than full submit: nothing is required yet,
// only length bounds are enforced.
func (s *generalState) saveValidate() error {
	if len(s.draft.CustomerData.CompanyName) > 100 {
		return domain.NewError(domain.ErrCodeInvalid, "company name must not exceed 100 characters")
	}
	if len(s.draft.WorkLocation.SiteName) > 100 {
		return domain.NewError(domain.ErrCodeInvalid, "site name must not exceed 100 characters")
	}
	return nil
}

func (s *generalState) apply(iv *domain.TechnicalIntervention) {
	iv.CustomerData = s.draft.CustomerData
	iv.RobotData = s.draft.RobotData
	iv.WorkLocation = s.draft.WorkLocation
}

func (s *generalState) commit() { s.original = s.draft }

// DetailsData is the draft of the Details tab.
type DetailsData struct {
	Technicians             []string `json:"technicians"`
	InterventionDescription string   `json:"intervention_description"`
	Materials               string   `json:"materials"`
	ExternalReport          string   `json:"external_report"`
}

func (d DetailsData) equal(other DetailsData) bool {
	if d.InterventionDescription != other.InterventionDescription ||
		d.Materials != other.Materials ||
		d.ExternalReport != other.ExternalReport ||
		len(d.Technicians) != len(other.Technicians) {
		return false
	}
	for i := range d.Technicians {
		if d.Technicians[i] != other.Technicians[i] {
			return false
		}
	}
	return true
}

type detailsState struct {
	draft    DetailsData
	original DetailsData
}

func (s *detailsState) dirty() bool { return !s.draft.equal(s.original) }

func (s *detailsState) saveValidate() error {
	// Technician cap is a hard limit, enforced even on auto-save.
	if len(s.draft.Technicians) > domain.MaxTechnicians {
		return domain.NewErrorf(domain.ErrCodeInvalid, "at most %d technicians allowed", domain.MaxTechnicians)
	}
	if len(s.draft.InterventionDescription) > 2000 {
		return domain.NewError(domain.ErrCodeInvalid, "description must not exceed 2000 characters")
	}
	return nil
}

func (s *detailsState) apply(iv *domain.TechnicalIntervention) {
	iv.Technicians = append([]string(nil), s.draft.Technicians...)
	iv.InterventionDescription = s.draft.InterventionDescription
	iv.Materials = s.draft.Materials
	iv.ExternalReport = s.draft.ExternalReport
}

func (s *detailsState) commit() {
	s.original = s.draft
	s.original.Technicians = append([]string(nil), s.draft.Technicians...)
}

// WorkDaysData is the draft of the WorkDays tab.
type WorkDaysData struct {
	WorkDays []domain.WorkDay `json:"work_days"`
}

type workDaysState struct {
	draft    WorkDaysData
	original WorkDaysData

	// The WorkDays tab is considered dirty while its detail sub-view is
	// open, regardless of field changes. This structural definition is
	// intentional and kept as-is.
	inDetailView bool
}

func (s *workDaysState) dirty() bool { return s.inDetailView }

func (s *workDaysState) saveValidate() error {
	for _, day := range s.draft.WorkDays {
		if day.Hours < 0 || day.Hours > 24 {
			return domain.NewError(domain.ErrCodeInvalid, "work day hours must be between 0 and 24")
		}
		if day.TravelHours < 0 || day.TravelHours > 24 {
			return domain.NewError(domain.ErrCodeInvalid, "travel hours must be between 0 and 24")
		}
	}
	return nil
}

func (s *workDaysState) apply(iv *domain.TechnicalIntervention) {
	iv.WorkDays = append([]domain.WorkDay(nil), s.draft.WorkDays...)
}

func (s *workDaysState) commit() {
	s.original = WorkDaysData{WorkDays: append([]domain.WorkDay(nil), s.draft.WorkDays...)}
	s.inDetailView = false
}

// SignaturesData is the draft of the Signatures tab.
type SignaturesData struct {
	TechnicianName          string `json:"technician_name"`
	CustomerName            string `json:"customer_name"`
	TechnicianSignaturePath string `json:"technician_signature_path"`
	CustomerSignaturePath   string `json:"customer_signature_path"`

	// Ready marks the signatures as final; only then are the names required.
	Ready bool `json:"ready"`
}

type signaturesState struct {
	draft    SignaturesData
	original SignaturesData
}

func (s *signaturesState) dirty() bool { return s.draft != s.original }

func (s *signaturesState) saveValidate() error {
	if len(s.draft.TechnicianName) > 100 {
		return domain.NewError(domain.ErrCodeInvalid, "technician signature name must not exceed 100 characters")
	}
	if len(s.draft.CustomerName) > 100 {
		return domain.NewError(domain.ErrCodeInvalid, "customer signature name must not exceed 100 characters")
	}
	if s.draft.Ready {
		if strings.TrimSpace(s.draft.TechnicianName) == "" {
			return domain.NewError(domain.ErrCodeInvalid, "technician signature name is required")
		}
		if strings.TrimSpace(s.draft.CustomerName) == "" {
			return domain.NewError(domain.ErrCodeInvalid, "customer signature name is required")
		}
	}
	return nil
}

func (s *signaturesState) apply(iv *domain.TechnicalIntervention) {
	iv.TechnicianSignatureName = s.draft.TechnicianName
	iv.CustomerSignatureName = s.draft.CustomerName
	iv.TechnicianSignaturePath = s.draft.TechnicianSignaturePath
	iv.CustomerSignaturePath = s.draft.CustomerSignaturePath
	iv.IsComplete = s.draft.Ready
}

func (s *signaturesState) commit() { s.original = s.draft }
