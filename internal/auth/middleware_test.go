package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
	"github.com/cortexsupport/cortex-backend/internal/user"
)

func storeTestUser(t *testing.T, users *fakeUserStore, username string, disabled bool) *user.User {
	t.Helper()

	u := &user.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		Role:      user.RoleUser,
		Disabled:  disabled,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	users.users[u.ID] = u
	return u
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Code
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	jwtService := newTestJWTService(t)
	m := NewMiddleware(jwtService, users)

	active := storeTestUser(t, users, "active", false)
	disabled := storeTestUser(t, users, "disabled", true)
	deleted := storeTestUser(t, users, "deleted", false)
	delete(users.users, deleted.ID)

	validToken, err := jwtService.CreateToken(active.ID, active.Email, time.Hour)
	require.NoError(t, err)
	disabledToken, err := jwtService.CreateToken(disabled.ID, disabled.Email, time.Hour)
	require.NoError(t, err)
	deletedToken, err := jwtService.CreateToken(deleted.ID, deleted.Email, time.Hour)
	require.NoError(t, err)

	expiredToken := signTestToken(t, testSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   active.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	badSubjectToken := signTestToken(t, testSecret, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeMissingAuth,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeInvalidAuthHeader,
		},
		{
			name:       "too many parts",
			authHeader: "Bearer one two",
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeInvalidAuthHeader,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeInvalidToken,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeTokenExpired,
		},
		{
			name:       "subject is not a UUID",
			authHeader: "Bearer " + badSubjectToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeInvalidTokenUserID,
		},
		{
			name:       "user no longer exists",
			authHeader: "Bearer " + deletedToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   httputil.CodeInvalidToken,
		},
		{
			name:       "disabled user",
			authHeader: "Bearer " + disabledToken,
			wantStatus: http.StatusForbidden,
			wantCode:   httputil.CodeUserDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not run for rejected requests")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.RequireAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}

	t.Run("valid token reaches the handler with the user in context", func(t *testing.T) {
		var seen *user.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := user.FromContext(r.Context())
			require.True(t, ok, "user must be in the request context")
			seen = u
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		rec := httptest.NewRecorder()

		m.RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, active.ID, seen.ID)
	})
}
