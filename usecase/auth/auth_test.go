package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/qreport/backend/domain"
)

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.Session)}
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	r.sessions[id] = s
	return nil
}

type AuthSuite struct {
	suite.Suite
	repo *fakeSessionRepo
	uc   *UseCase
	ctx  context.Context
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
	s.repo = newFakeSessionRepo()
	s.uc = New(s.repo, nil)
	s.ctx = context.Background()
}

func (s *AuthSuite) TestCreateAndGetSession() {
	session, err := s.uc.CreateSession(s.ctx, "tech-1", "tablet", time.Hour)
	s.Require().NoError(err)
	s.NotEmpty(session.ID)
	s.Equal("tech-1", session.TechnicianID)

	got, err := s.uc.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.TechnicianID, got.TechnicianID)
}

func (s *AuthSuite) TestCreateRequiresTechnician() {
	_, err := s.uc.CreateSession(s.ctx, "", "tablet", time.Hour)
	s.ErrorIs(err, domain.ErrInvalidPayload)
}

func (s *AuthSuite) TestExpiredSessionIsPurged() {
	session, err := s.uc.CreateSession(s.ctx, "tech-1", "", -time.Minute)
	s.Require().NoError(err)

	_, err = s.uc.GetSession(s.ctx, session.ID)
	s.Require().ErrorIs(err, domain.ErrSessionNotFound)

	// The stale record was removed, not just hidden.
	_, err = s.repo.Get(s.ctx, session.ID)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}

func (s *AuthSuite) TestRefreshExtendsExpiry() {
	session, err := s.uc.CreateSession(s.ctx, "tech-1", "", time.Minute)
	s.Require().NoError(err)

	refreshed, err := s.uc.RefreshSession(s.ctx, session.ID, 2*time.Hour)
	s.Require().NoError(err)
	s.True(refreshed.ExpiresAt.After(session.ExpiresAt))
}

func (s *AuthSuite) TestRevokeSession() {
	session, err := s.uc.CreateSession(s.ctx, "tech-1", "", time.Hour)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.RevokeSession(s.ctx, session.ID))
	_, err = s.uc.GetSession(s.ctx, session.ID)
	s.ErrorIs(err, domain.ErrSessionNotFound)
}
