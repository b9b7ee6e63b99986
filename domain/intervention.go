package domain

import (
	"strings"
	"time"
)

// InterventionStatus is the lifecycle state of a technical intervention.
type InterventionStatus string

const (
	StatusDraft         InterventionStatus = "DRAFT"
	StatusInProgress    InterventionStatus = "IN_PROGRESS"
	StatusPendingReview InterventionStatus = "PENDING_REVIEW"
	StatusCompleted     InterventionStatus = "COMPLETED"
	StatusArchived      InterventionStatus = "ARCHIVED"
)

// MaxTechnicians bounds the technician list of a single intervention.
const MaxTechnicians = 6

var statusTransitions = map[InterventionStatus][]InterventionStatus{
	StatusDraft:         {StatusInProgress, StatusArchived},
	StatusInProgress:    {StatusPendingReview, StatusCompleted, StatusDraft, StatusArchived},
	StatusPendingReview: {StatusInProgress, StatusCompleted, StatusDraft},
	StatusCompleted:     {StatusArchived},
	StatusArchived:      {StatusInProgress},
}

// IsValid reports whether the value is a known lifecycle status.
func (s InterventionStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the directed edge s -> target is legal.
// A same-state transition is always allowed and treated as a no-op.
func (s InterventionStatus) CanTransitionTo(target InterventionStatus) bool {
	if s == target {
		return true
	}
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// NewInvalidStatusTransition builds the error reported for an illegal edge.
func NewInvalidStatusTransition(current, requested InterventionStatus) *Error {
	return NewErrorf(ErrCodeInvalidState, "invalid status transition from %s to %s", current, requested)
}

// WorkDay records one day of on-site activity.
type WorkDay struct {
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	TravelHours float64   `json:"travel_hours"`
	Notes       string    `json:"notes,omitempty"`
}

// CustomerData identifies the customer an intervention was performed for.
type CustomerData struct {
	ClientID      string `json:"client_id,omitempty"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
}

// RobotData identifies the machine worked on.
type RobotData struct {
	IslandID     string `json:"island_id,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Model        string `json:"model,omitempty"`
}

// WorkLocation points at the facility where the work happened.
type WorkLocation struct {
	FacilityID string `json:"facility_id,omitempty"`
	SiteName   string `json:"site_name,omitempty"`
	City       string `json:"city,omitempty"`
}

// TechnicalIntervention is the aggregate edited by the multi-tab report editor.
type TechnicalIntervention struct {
	ID                      string             `json:"id"`
	CustomerData            CustomerData       `json:"customer_data"`
	RobotData               RobotData          `json:"robot_data"`
	WorkLocation            WorkLocation       `json:"work_location"`
	Technicians             []string           `json:"technicians,omitempty"`
	InterventionDescription string             `json:"intervention_description,omitempty"`
	Materials               string             `json:"materials,omitempty"`
	ExternalReport          string             `json:"external_report,omitempty"`
	WorkDays                []WorkDay          `json:"work_days,omitempty"`
	TechnicianSignaturePath string             `json:"technician_signature_path,omitempty"`
	TechnicianSignatureName string             `json:"technician_signature_name,omitempty"`
	CustomerSignaturePath   string             `json:"customer_signature_path,omitempty"`
	CustomerSignatureName   string             `json:"customer_signature_name,omitempty"`
	IsComplete              bool               `json:"is_complete"`
	Status                  InterventionStatus `json:"status"`
	CreatedAt               time.Time          `json:"created_at"`
	UpdatedAt               time.Time          `json:"updated_at"`
}

func (iv *TechnicalIntervention) Validate() error {
	if iv == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(iv.CustomerData.CompanyName) == "" {
		return NewError(ErrCodeInvalid, "customer company name is required")
	}
	if len(iv.Technicians) > MaxTechnicians {
		return NewErrorf(ErrCodeInvalid, "at most %d technicians allowed", MaxTechnicians)
	}
	if iv.Status != "" && !iv.Status.IsValid() {
		return NewErrorf(ErrCodeInvalid, "unknown intervention status %q", iv.Status)
	}
	return nil
}

// DeleteEligibility classifies whether an intervention may be removed.
// COMPLETED and ARCHIVED reports are protected, PENDING_REVIEW needs an
// explicit confirmation. The force flag overrides all three.
func (iv *TechnicalIntervention) DeleteEligibility(force bool) error {
	if iv == nil {
		return ErrInterventionNotFound
	}
	if force {
		return nil
	}
	switch iv.Status {
	case StatusCompleted, StatusArchived:
		return NewErrorf(ErrCodeInvalidState, "cannot delete %s intervention", iv.Status)
	case StatusPendingReview:
		return NewError(ErrCodeInvalidState, "deleting a PENDING_REVIEW intervention requires confirmation")
	default:
		return nil
	}
}
