package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
	"github.com/qreport/backend/repository/memory"
)

type fakeSignatureStore struct {
	saved int
}

func (f *fakeSignatureStore) SaveTechnicianSignature(interventionID string, _ []byte) (string, error) {
	f.saved++
	return fmt.Sprintf("%s/technician.png", interventionID), nil
}

func (f *fakeSignatureStore) SaveCustomerSignature(interventionID string, _ []byte) (string, error) {
	f.saved++
	return fmt.Sprintf("%s/customer.png", interventionID), nil
}

type EditorSuite struct {
	suite.Suite
	repo        *memory.InterventionRepository
	store       *fakeSignatureStore
	coordinator *Coordinator
	ctx         context.Context
	iv          *domain.TechnicalIntervention
}

func TestEditorSuite(t *testing.T) {
	suite.Run(t, new(EditorSuite))
}

func (s *EditorSuite) SetupTest() {
	s.repo = memory.NewInterventionRepository()
	s.store = &fakeSignatureStore{}
	s.coordinator = NewCoordinator(s.repo, s.store, nil)
	s.ctx = context.Background()

	iv, err := s.repo.Create(s.ctx, &domain.TechnicalIntervention{
		CustomerData: domain.CustomerData{CompanyName: "ACME Robotics"},
		Technicians:  []string{"t-1"},
		Status:       domain.StatusInProgress,
	})
	s.Require().NoError(err)
	s.iv = iv
}

func (s *EditorSuite) open() Snapshot {
	snapshot, err := s.coordinator.Open(s.ctx, s.iv.ID)
	s.Require().NoError(err)
	return snapshot
}

func (s *EditorSuite) TestOpenSeedsCleanSession() {
	snapshot := s.open()

	s.Equal(TabGeneral, snapshot.SelectedTab)
	s.False(snapshot.CombinedDirty)
	s.False(snapshot.IsTabSwitching)
	s.Equal("ACME Robotics", snapshot.General.CustomerData.CompanyName)
	s.Equal([]string{"t-1"}, snapshot.Details.Technicians)
}

func (s *EditorSuite) TestSwitchFromCleanTabWritesNothing() {
	snapshot := s.open()

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabDetails)
	s.Require().NoError(err)
	s.Equal(TabDetails, out.SelectedTab)
	s.False(out.IsTabSwitching)
	s.Zero(s.repo.UpdateCalls())
}

func (s *EditorSuite) TestSwitchSavesOnlyDirtyLeavingTab() {
	snapshot := s.open()

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabSignatures)
	s.Require().NoError(err)
	s.Equal(TabSignatures, out.SelectedTab)
	s.False(out.IsTabSwitching)
	s.Equal(1, s.repo.UpdateCalls())
	s.False(out.Dirty[TabGeneral])

	reloaded, err := s.repo.GetByID(s.ctx, s.iv.ID)
	s.Require().NoError(err)
	s.Equal("Anna Bianchi", reloaded.CustomerData.ContactPerson)
	// Tabs that were not left keep their persisted values untouched.
	s.Equal([]string{"t-1"}, reloaded.Technicians)
}

func (s *EditorSuite) TestInvalidDraftAbortsSwitch() {
	snapshot := s.open()

	details := snapshot.Details
	details.Technicians = make([]string, domain.MaxTechnicians+1)
	_, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabDetails)
	s.Require().NoError(err)
	_, err = s.coordinator.UpdateDetails(snapshot.SessionID, details)
	s.Require().NoError(err)

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabGeneral)
	s.Require().Error(err)
	s.Equal(TabDetails, out.SelectedTab)
	s.NotEmpty(out.LastError)
	s.False(out.IsTabSwitching)
	s.Zero(s.repo.UpdateCalls())
}

func (s *EditorSuite) TestFailedPersistAbortsSwitch() {
	snapshot := s.open()
	s.repo.FailUpdate[s.iv.ID] = domain.NewError(domain.ErrCodeInternal, "disk error")

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabDetails)
	s.Require().Error(err)
	s.Equal(TabGeneral, out.SelectedTab)
	s.False(out.IsTabSwitching)
	s.True(out.Dirty[TabGeneral], "failed save keeps the tab dirty")
}

func (s *EditorSuite) TestSameTabSwitchIsNoOp() {
	snapshot := s.open()

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabGeneral)
	s.Require().NoError(err)
	s.Equal(TabGeneral, out.SelectedTab)
	s.True(out.Dirty[TabGeneral], "no-op switch saves nothing")
	s.Zero(s.repo.UpdateCalls())
}

func (s *EditorSuite) TestWorkDaysDirtyTracksDetailView() {
	snapshot := s.open()

	out, err := s.coordinator.SetWorkDaysDetailView(snapshot.SessionID, true)
	s.Require().NoError(err)
	s.True(out.Dirty[TabWorkDays])
	s.True(out.CombinedDirty)

	out, err = s.coordinator.SetWorkDaysDetailView(snapshot.SessionID, false)
	s.Require().NoError(err)
	s.False(out.Dirty[TabWorkDays])
}

func (s *EditorSuite) TestWorkDaysSaveClosesDetailView() {
	snapshot := s.open()

	_, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabWorkDays)
	s.Require().NoError(err)
	_, err = s.coordinator.SetWorkDaysDetailView(snapshot.SessionID, true)
	s.Require().NoError(err)
	_, err = s.coordinator.UpdateWorkDays(snapshot.SessionID, WorkDaysData{
		WorkDays: []domain.WorkDay{{Hours: 8, TravelHours: 1.5}},
	})
	s.Require().NoError(err)

	out, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabGeneral)
	s.Require().NoError(err)
	s.False(out.Dirty[TabWorkDays])
	s.Equal(1, s.repo.UpdateCalls())

	reloaded, err := s.repo.GetByID(s.ctx, s.iv.ID)
	s.Require().NoError(err)
	s.Require().Len(reloaded.WorkDays, 1)
	s.Equal(8.0, reloaded.WorkDays[0].Hours)
}

func (s *EditorSuite) TestSignaturesReadyRequiresNames() {
	snapshot := s.open()

	_, err := s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabSignatures)
	s.Require().NoError(err)
	_, err = s.coordinator.UpdateSignatures(snapshot.SessionID, SignaturesData{Ready: true})
	s.Require().NoError(err)

	_, err = s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabGeneral)
	s.Require().Error(err)

	_, err = s.coordinator.UpdateSignatures(snapshot.SessionID, SignaturesData{
		TechnicianName: "Mario Rossi",
		CustomerName:   "Anna Bianchi",
		Ready:          true,
	})
	s.Require().NoError(err)

	_, err = s.coordinator.SwitchTab(s.ctx, snapshot.SessionID, TabGeneral)
	s.Require().NoError(err)

	reloaded, err := s.repo.GetByID(s.ctx, s.iv.ID)
	s.Require().NoError(err)
	s.True(reloaded.IsComplete)
	s.Equal("Mario Rossi", reloaded.TechnicianSignatureName)
}

func (s *EditorSuite) TestAttachSignatureSetsStorePath() {
	snapshot := s.open()

	out, err := s.coordinator.AttachTechnicianSignature(snapshot.SessionID, []byte{0x89, 0x50})
	s.Require().NoError(err)
	s.Equal(s.iv.ID+"/technician.png", out.Signatures.TechnicianSignaturePath)
	s.Equal(1, s.store.saved)

	// Caller-provided paths are ignored on draft updates.
	out, err = s.coordinator.UpdateSignatures(snapshot.SessionID, SignaturesData{
		TechnicianSignaturePath: "spoofed.png",
	})
	s.Require().NoError(err)
	s.Equal(s.iv.ID+"/technician.png", out.Signatures.TechnicianSignaturePath)
}

func (s *EditorSuite) TestExitSavesSelectedTabOnly() {
	snapshot := s.open()

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.Exit(s.ctx, snapshot.SessionID, true))
	s.Equal(1, s.repo.UpdateCalls())

	_, err = s.coordinator.State(snapshot.SessionID)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}

func (s *EditorSuite) TestExitProceedsWhenSaveFails() {
	snapshot := s.open()
	s.repo.FailUpdate[s.iv.ID] = domain.NewError(domain.ErrCodeInternal, "disk error")

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	// Save-on-exit is lenient: the failure is logged and exit proceeds.
	s.Require().NoError(s.coordinator.Exit(s.ctx, snapshot.SessionID, true))

	_, err = s.coordinator.State(snapshot.SessionID)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}

func (s *EditorSuite) TestExitWithoutSaveDiscardsDraft() {
	snapshot := s.open()

	general := snapshot.General
	general.CustomerData.ContactPerson = "Anna Bianchi"
	_, err := s.coordinator.UpdateGeneral(snapshot.SessionID, general)
	s.Require().NoError(err)

	s.Require().NoError(s.coordinator.Exit(s.ctx, snapshot.SessionID, false))
	s.Zero(s.repo.UpdateCalls())

	reloaded, err := s.repo.GetByID(s.ctx, s.iv.ID)
	s.Require().NoError(err)
	s.Empty(reloaded.CustomerData.ContactPerson)
}
