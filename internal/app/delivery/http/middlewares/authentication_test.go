package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medipoint-service/internal/app/config"
	"medipoint-service/internal/app/models"
	"medipoint-service/internal/pkg/constvars"
	"medipoint-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testJWTSecret = "test-jwt-secret"

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (s *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (*models.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, exceptions.ErrInvalidSession(fmt.Errorf("no session stored for id %s", sessionID))
	}
	return session, nil
}

func signedToken(t *testing.T, sessionID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)
	return signed
}

func newTestMiddlewares(sessions map[string]*models.Session) *Middlewares {
	return &Middlewares{
		Log:            zap.NewNop(),
		SessionService: &fakeSessionService{sessions: sessions},
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: testJWTSecret},
		},
	}
}

func TestAuthenticate(t *testing.T) {
	patientSession := &models.Session{
		SessionID: "sess-1",
		Role:      constvars.RolePatient,
		PatientID: "0123456789abcdef01234567",
	}
	middlewares := newTestMiddlewares(map[string]*models.Session{"sess-1": patientSession})

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		assert.True(t, ok, "session should be set in context")
		assert.Equal(t, constvars.RolePatient, session.Role)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token resolves the session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/v1.0/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signedToken(t, "sess-1"))

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/v1.0/appointments", nil)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/v1.0/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token with unknown session is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/v1.0/appointments", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signedToken(t, "sess-unknown"))

		rr := httptest.NewRecorder()
		middlewares.Authenticate(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	middlewares := newTestMiddlewares(nil)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	withSession := func(req *http.Request, session *models.Session) *http.Request {
		ctx := context.WithValue(req.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		return req.WithContext(ctx)
	}

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/v1.0/appointments", nil)
		req = withSession(req, &models.Session{Role: constvars.RolePatient})

		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RolePatient)(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/v1.0/admin/dashboard", nil)
		req = withSession(req, &models.Session{Role: constvars.RolePatient})

		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RoleAdmin)(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("any of several roles passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/v1.0/appointments/x/complete", nil)
		req = withSession(req, &models.Session{Role: constvars.RoleAdmin})

		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RoleDoctor, constvars.RoleAdmin)(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing session is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/v1.0/appointments", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireRoles(constvars.RolePatient)(okHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
