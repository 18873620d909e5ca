package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
	"github.com/cortexsupport/cortex-backend/internal/logging"
)

// Handler contains HTTP handlers for user endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateMeRequest represents the profile update request body.
// Absent fields are left unchanged.
type UpdateMeRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// List handles the paginated user listing
// @Summary      List users
// @Description  Return a page of users. Superusers see all users; everyone else sees only themselves.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skip  query int false "Number of users to skip" default(0)
// @Param        limit query int false "Page size (1-100)" default(100)
// @Success      200 {object} List
// @Failure      400 {object} httputil.ErrorResponse "Invalid pagination parameters"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	requester, ok := FromContext(r.Context())
	if !ok {
		logger.Error("authenticated route called without user in context")
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	skip, limit, err := parseListParams(r)
	if err != nil {
		logger.Warn("invalid pagination parameters", "error", err.Error())
		respondError(w, err.Error(), httputil.CodeInvalidQueryParam, http.StatusBadRequest)
		return
	}

	page, err := h.service.List(r.Context(), requester, skip, limit)
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		respondError(w, "failed to list users", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	respondJSON(w, page, http.StatusOK)
}

// GetByID handles user lookup by ID
// @Summary      Get user by ID
// @Description  Return a single user. Non-superusers may only fetch their own record.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID (UUID)"
// @Success      200 {object} User
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} httputil.ErrorResponse "Insufficient permissions"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	requester, ok := FromContext(r.Context())
	if !ok {
		logger.Error("authenticated route called without user in context")
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	// A malformed ID can never match a user, so it reads as not found
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("user lookup with malformed id")
		respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
		return
	}

	u, err := h.service.Get(r.Context(), requester, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("user lookup failed: not found", "target_id", id)
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrForbidden) {
			logger.Warn("user lookup failed: insufficient permissions", "target_id", id)
			respondError(w, "insufficient permissions", httputil.CodeForbidden, http.StatusForbidden)
			return
		}
		logger.Error("user lookup failed: internal error", "error", err.Error())
		respondError(w, "failed to get user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	respondJSON(w, u, http.StatusOK)
}

// Me returns the current user's profile
// @Summary      Get current user
// @Description  Return the profile of the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Router       /users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	requester, ok := FromContext(r.Context())
	if !ok {
		logger.Error("authenticated route called without user in context")
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	respondJSON(w, requester, http.StatusOK)
}

// UpdateMe handles partial profile updates for the current user
// @Summary      Update current user
// @Description  Update email, username, full name and/or password of the authenticated user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateMeRequest true "Fields to update"
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      409 {object} httputil.ErrorResponse "Email or username already exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /users/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	requester, ok := FromContext(r.Context())
	if !ok {
		logger.Error("authenticated route called without user in context")
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateMe(r.Context(), requester.ID, UpdateParams{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			logger.Warn("profile update failed: email already exists")
			respondError(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusConflict)
			return
		}
		if errors.Is(err, ErrDuplicateUsername) {
			logger.Warn("profile update failed: username already exists")
			respondError(w, "username already exists", httputil.CodeUsernameAlreadyExists, http.StatusConflict)
			return
		}
		if code, ok := ValidationCode(err); ok {
			logger.Warn("profile update failed: validation error", "error", err.Error())
			respondError(w, err.Error(), code, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrNotFound) {
			logger.Warn("profile update failed: user not found")
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("profile update failed: internal error", "error", err.Error())
		respondError(w, "failed to update user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user profile updated", "user_id", requester.ID)

	respondJSON(w, updated, http.StatusOK)
}

// DeleteMe handles account deletion for the current user
// @Summary      Delete current user
// @Description  Delete the authenticated user's account and revoke all refresh tokens
// @Tags         users
// @Security     BearerAuth
// @Success      204 "Account deleted"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /users/me [delete]
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	requester, ok := FromContext(r.Context())
	if !ok {
		logger.Error("authenticated route called without user in context")
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteMe(r.Context(), requester.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("account deletion failed: user not found")
			respondError(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("account deletion failed: internal error", "error", err.Error())
		respondError(w, "failed to delete user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user account deleted", "user_id", requester.ID)

	httputil.RespondNoContent(w)
}

// parseListParams reads the pagination query with the original defaults
func parseListParams(r *http.Request) (int64, int64, error) {
	skip := int64(0)
	limit := int64(100)

	if raw := r.URL.Query().Get("skip"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, errors.New("skip must be a non-negative integer")
		}
		skip = v
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 1 || v > 100 {
			return 0, 0, errors.New("limit must be an integer between 1 and 100")
		}
		limit = v
	}

	return skip, limit, nil
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
