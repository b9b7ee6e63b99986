// Package editor coordinates the four sub-forms of the intervention report
// editor. Each sub-form owns a draft and a last-saved snapshot; dirtiness is
// the field-wise difference between the two. Switching tabs saves only the
// tab being left, and a failed save aborts the switch. All work for one
// session runs under a single lock, so saves are strictly sequential and no
// two persistence writes for the same aggregate are ever in flight at once.
package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository"
)

// SignatureStore persists signature images and hands back opaque paths.
type SignatureStore interface {
	SaveTechnicianSignature(interventionID string, image []byte) (string, error)
	SaveCustomerSignature(interventionID string, image []byte) (string, error)
}

// Session is one open editing session over a single intervention.
type Session struct {
	ID             string
	InterventionID string

	mu        sync.Mutex
	aggregate *domain.TechnicalIntervention
	selected  Tab
	switching bool
	lastError string

	general    generalState
	details    detailsState
	workDays   workDaysState
	signatures signaturesState
}

func (s *Session) tab(t Tab) tabState {
	switch t {
	case TabGeneral:
		return &s.general
	case TabDetails:
		return &s.details
	case TabWorkDays:
		return &s.workDays
	case TabSignatures:
		return &s.signatures
	default:
		return nil
	}
}

func (s *Session) combinedDirty() bool {
	return s.general.dirty() || s.details.dirty() || s.workDays.dirty() || s.signatures.dirty()
}

// Snapshot is the observable editor state returned to callers.
type Snapshot struct {
	SessionID      string         `json:"session_id"`
	InterventionID string         `json:"intervention_id"`
	SelectedTab    Tab            `json:"selected_tab"`
	IsTabSwitching bool           `json:"is_tab_switching"`
	Dirty          map[Tab]bool   `json:"dirty"`
	CombinedDirty  bool           `json:"combined_dirty"`
	LastError      string         `json:"last_error,omitempty"`
	General        GeneralData    `json:"general"`
	Details        DetailsData    `json:"details"`
	WorkDays       WorkDaysData   `json:"work_days"`
	Signatures     SignaturesData `json:"signatures"`
}

// Coordinator owns the editor sessions and drives the tab-switch and exit
// protocols against the intervention repository.
type Coordinator struct {
	interventions repository.InterventionRepository
	signatures    SignatureStore
	logger        *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewCoordinator(interventions repository.InterventionRepository, signatures SignatureStore, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		interventions: interventions,
		signatures:    signatures,
		logger:        logger,
		sessions:      make(map[string]*Session),
	}
}

// Open loads the intervention and seeds every tab's draft and snapshot from
// the persisted record, starting on the General tab.
func (c *Coordinator) Open(ctx context.Context, interventionID string) (Snapshot, error) {
	iv, err := c.interventions.GetByID(ctx, interventionID)
	if err != nil {
		return Snapshot{}, err
	}

	s := &Session{
		ID:             uuid.NewString(),
		InterventionID: iv.ID,
		aggregate:      iv,
		selected:       TabGeneral,
	}

	general := GeneralData{
		CustomerData: iv.CustomerData,
		RobotData:    iv.RobotData,
		WorkLocation: iv.WorkLocation,
	}
	s.general = generalState{draft: general, original: general}

	details := DetailsData{
		Technicians:             append([]string(nil), iv.Technicians...),
		InterventionDescription: iv.InterventionDescription,
		Materials:               iv.Materials,
		ExternalReport:          iv.ExternalReport,
	}
	s.details = detailsState{draft: details, original: details}
	s.details.commit()

	s.workDays = workDaysState{
		draft: WorkDaysData{WorkDays: append([]domain.WorkDay(nil), iv.WorkDays...)},
	}
	s.workDays.commit()

	sigs := SignaturesData{
		TechnicianName:          iv.TechnicianSignatureName,
		CustomerName:            iv.CustomerSignatureName,
		TechnicianSignaturePath: iv.TechnicianSignaturePath,
		CustomerSignaturePath:   iv.CustomerSignaturePath,
		Ready:                   iv.IsComplete,
	}
	s.signatures = signaturesState{draft: sigs, original: sigs}

	c.mu.Lock()
	c.sessions[s.ID] = s
	c.mu.Unlock()

	return c.snapshot(s), nil
}

// SwitchTab runs the tab-change protocol: same-tab requests are no-ops, the
// leaving tab is auto-saved only when dirty, a failed save validation or
// persistence write aborts the switch, and tab interaction is re-enabled in
// every outcome.
func (c *Coordinator) SwitchTab(ctx context.Context, sessionID string, target Tab) (Snapshot, error) {
	if !target.IsValid() {
		return Snapshot{}, domain.NewErrorf(domain.ErrCodeInvalid, "unknown tab %q", target)
	}
	s, err := c.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if target == s.selected {
		return c.snapshotLocked(s), nil
	}

	s.switching = true
	// Panic backstop; the happy and error paths clear the flag themselves
	// before the snapshot is taken.
	defer func() { s.switching = false }()

	if err := c.saveTabLocked(ctx, s, s.selected); err != nil {
		s.lastError = err.Error()
		s.switching = false
		return c.snapshotLocked(s), err
	}

	s.lastError = ""
	s.selected = target
	s.switching = false
	return c.snapshotLocked(s), nil
}

// Exit closes the session. When saveCurrent is set and the selected tab is
// dirty, only that tab is saved; a failed save is logged and exit proceeds
// anyway. The session is always removed.
func (c *Coordinator) Exit(ctx context.Context, sessionID string, saveCurrent bool) error {
	s, err := c.session(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if saveCurrent {
		if err := c.saveTabLocked(ctx, s, s.selected); err != nil {
			c.logger.Warn("save on exit failed, leaving anyway",
				zap.String("session_id", sessionID),
				zap.String("tab", string(s.selected)),
				zap.Error(err))
		}
	}
	s.mu.Unlock()

	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()
	return nil
}

// IsDirty reports the combined dirty flag used by the exit confirmation.
func (c *Coordinator) IsDirty(sessionID string) (bool, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combinedDirty(), nil
}

// State returns the current observable editor state.
func (c *Coordinator) State(sessionID string) (Snapshot, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return c.snapshot(s), nil
}

func (c *Coordinator) UpdateGeneral(sessionID string, data GeneralData) (Snapshot, error) {
	return c.mutate(sessionID, func(s *Session) {
		s.general.draft = data
	})
}

func (c *Coordinator) UpdateDetails(sessionID string, data DetailsData) (Snapshot, error) {
	return c.mutate(sessionID, func(s *Session) {
		s.details.draft = data
	})
}

func (c *Coordinator) UpdateWorkDays(sessionID string, data WorkDaysData) (Snapshot, error) {
	return c.mutate(sessionID, func(s *Session) {
		s.workDays.draft = data
	})
}

// SetWorkDaysDetailView toggles the WorkDays detail sub-view; being inside it
// is what makes that tab dirty.
func (c *Coordinator) SetWorkDaysDetailView(sessionID string, open bool) (Snapshot, error) {
	return c.mutate(sessionID, func(s *Session) {
		s.workDays.inDetailView = open
	})
}

func (c *Coordinator) UpdateSignatures(sessionID string, data SignaturesData) (Snapshot, error) {
	return c.mutate(sessionID, func(s *Session) {
		// Image paths are owned by the signature store, not the caller.
		data.TechnicianSignaturePath = s.signatures.draft.TechnicianSignaturePath
		data.CustomerSignaturePath = s.signatures.draft.CustomerSignaturePath
		s.signatures.draft = data
	})
}

// AttachTechnicianSignature stores the image and records the returned path
// in the signatures draft.
func (c *Coordinator) AttachTechnicianSignature(sessionID string, image []byte) (Snapshot, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	path, err := c.signatures.SaveTechnicianSignature(s.InterventionID, image)
	if err != nil {
		return Snapshot{}, err
	}
	return c.mutate(sessionID, func(s *Session) {
		s.signatures.draft.TechnicianSignaturePath = path
	})
}

// AttachCustomerSignature is the customer-side twin of AttachTechnicianSignature.
func (c *Coordinator) AttachCustomerSignature(sessionID string, image []byte) (Snapshot, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	path, err := c.signatures.SaveCustomerSignature(s.InterventionID, image)
	if err != nil {
		return Snapshot{}, err
	}
	return c.mutate(sessionID, func(s *Session) {
		s.signatures.draft.CustomerSignaturePath = path
	})
}

// saveTabLocked implements the auto-save step: clean tabs are skipped without
// touching storage, dirty tabs run the permissive validation, persist the
// merged aggregate, and only then move their snapshot forward.
func (c *Coordinator) saveTabLocked(ctx context.Context, s *Session, tab Tab) error {
	state := s.tab(tab)
	if state == nil || !state.dirty() {
		return nil
	}
	if err := state.saveValidate(); err != nil {
		return err
	}
	state.apply(s.aggregate)
	if err := c.interventions.Update(ctx, s.aggregate); err != nil {
		return err
	}
	state.commit()
	return nil
}

func (c *Coordinator) mutate(sessionID string, fn func(*Session)) (Snapshot, error) {
	s, err := c.session(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
	return c.snapshotLocked(s), nil
}

func (c *Coordinator) session(id string) (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (c *Coordinator) snapshot(s *Session) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.snapshotLocked(s)
}

func (c *Coordinator) snapshotLocked(s *Session) Snapshot {
	return Snapshot{
		SessionID:      s.ID,
		InterventionID: s.InterventionID,
		SelectedTab:    s.selected,
		IsTabSwitching: s.switching,
		Dirty: map[Tab]bool{
			TabGeneral:    s.general.dirty(),
			TabDetails:    s.details.dirty(),
			TabWorkDays:   s.workDays.dirty(),
			TabSignatures: s.signatures.dirty(),
		},
		CombinedDirty: s.combinedDirty(),
		LastError:     s.lastError,
		General:       s.general.draft,
		Details:       s.details.draft,
		WorkDays:      s.workDays.draft,
		Signatures:    s.signatures.draft,
	}
}
