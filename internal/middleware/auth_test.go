package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject, role string, expiry time.Duration) string {
	t.Helper()
	claims := identityClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuth(t *testing.T) {
	log := testLogger(t)

	var captured domain.Identity
	handler := Auth(testSecret, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		token        string
		expectedCode int
		expectedID   string
		expectedRole domain.Role
	}{
		{
			name:         "participant token",
			token:        signToken(t, "user-1", "", time.Hour),
			expectedCode: http.StatusOK,
			expectedID:   "user-1",
			expectedRole: domain.RoleParticipant,
		},
		{
			name:         "admin token",
			token:        signToken(t, "admin-1", "ADMIN", time.Hour),
			expectedCode: http.StatusOK,
			expectedID:   "admin-1",
			expectedRole: domain.RoleAdmin,
		},
		{
			name:         "unknown role defaults to participant",
			token:        signToken(t, "user-2", "SUPERUSER", time.Hour),
			expectedCode: http.StatusOK,
			expectedID:   "user-2",
			expectedRole: domain.RoleParticipant,
		},
		{
			name:         "missing header",
			token:        "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "expired token",
			token:        signToken(t, "user-1", "", -time.Hour),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "garbage token",
			token:        "not.a.jwt",
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = domain.Identity{}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(tt.token))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, tt.expectedID, captured.UserID)
				assert.Equal(t, tt.expectedRole, captured.Role)
			}
		})
	}
}

func TestAuth_RejectsMissingSubject(t *testing.T) {
	log := testLogger(t)
	handler := Auth(testSecret, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(signToken(t, "", "ADMIN", time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	log := testLogger(t)
	protected := Auth(testSecret, log)(RequireAdmin(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, authedRequest(signToken(t, "admin-1", "ADMIN", time.Hour)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, authedRequest(signToken(t, "user-1", "", time.Hour)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_WithoutAuth(t *testing.T) {
	log := testLogger(t)
	handler := RequireAdmin(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
