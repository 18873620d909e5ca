package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexsupport/cortex-backend/internal/httputil"
	"github.com/cortexsupport/cortex-backend/internal/logging"
)

func TestParseListParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantSkip  int64
		wantLimit int64
		wantErr   bool
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 100},
		{name: "explicit values", query: "skip=20&limit=5", wantSkip: 20, wantLimit: 5},
		{name: "limit upper bound", query: "limit=100", wantSkip: 0, wantLimit: 100},
		{name: "limit too large", query: "limit=101", wantErr: true},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "negative skip", query: "skip=-1", wantErr: true},
		{name: "skip not a number", query: "skip=abc", wantErr: true},
		{name: "limit not a number", query: "limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users?"+tt.query, nil)

			skip, limit, err := parseListParams(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestGetByID_MalformedIDReadsAsNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	requester := seedUser(store, "alice", false)
	h := NewHandler(NewService(store, &fakeRevoker{}, logging.NewLogger(true)), logging.NewLogger(true))

	r := chi.NewRouter()
	r.Get("/users/{id}", h.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	req = req.WithContext(NewContext(req.Context(), requester))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httputil.CodeUserNotFound, resp.Code)
}

func TestHandlers_RejectMissingContextUser(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	h := NewHandler(NewService(store, &fakeRevoker{}, logging.NewLogger(true)), logging.NewLogger(true))

	// No authenticated user in the request context
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, httputil.CodeMissingAuth, resp.Code)
}
