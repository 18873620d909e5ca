package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
	"github.com/cortexsupport/cortex-backend/internal/user"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
	userRepo     UserStore
}

func NewMiddleware(tokenService TokenService, userRepo UserStore) *Middleware {
	return &Middleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// RequireAuth validates the bearer token and resolves it to a live user
// record before the handler runs
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokenService.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			httputil.RespondErrorWithCode(w, "invalid user ID in token", httputil.CodeInvalidTokenUserID, http.StatusUnauthorized)
			return
		}

		// Resolve the subject to a live user record
		currentUser, err := m.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "failed to authenticate request", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}

		if currentUser.Disabled {
			httputil.RespondErrorWithCode(w, "user account is disabled", httputil.CodeUserDisabled, http.StatusForbidden)
			return
		}

		ctx := user.NewContext(r.Context(), currentUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
