package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoren/drivetrack/internal/handler"
	"github.com/mkoren/drivetrack/internal/middleware"
)

// testUserID is the identity injected by the pass-through auth middleware.
const testUserID int64 = 42

// passAuth stands in for the real bearer-token middleware: it puts a fixed
// user ID on the context and lets every request through.
func passAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUserID)))
	})
}

// newTestHandler mounts the full route table with authentication stubbed out.
func newTestHandler(srv *handler.Server) http.Handler {
	return srv.Routes(passAuth)
}

// jsonBody marshals v for use as a request body.
func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))
	return &buf
}

// errResponse mirrors the error envelope every non-2xx response carries.
type errResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errResponse {
	t.Helper()
	var resp errResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetHealth_200(t *testing.T) {
	srv := handler.NewServer(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newTestHandler(srv).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}
