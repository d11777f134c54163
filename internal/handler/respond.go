package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mkoren/drivetrack/internal/domain"
)

// errorResponse is the JSON body returned for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps domain sentinel errors to HTTP status codes.
// Anything unrecognized is a 500 with an opaque body; the real error is
// logged server-side, never leaked to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{errorDetail{"not_found", errMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{"validation_error", errMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{errorDetail{"conflict", errMessage(err)}})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{errorDetail{"unauthorized", "invalid credentials"}})
	default:
		slog.ErrorContext(r.Context(), "internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{"internal", "internal server error"}})
	}
}

// respondValidation writes a 422 for input rejected before reaching the
// service layer (missing field, malformed body, out-of-range coordinate).
func respondValidation(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{"validation_error", message}})
}

// errMessage strips the "layer.Type.Method:" wrapping prefixes so clients see
// only the human-readable tail, e.g.
// "service.TripService.Finish: not found" → "not found".
func errMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathInt64 parses a chi URL parameter as an int64 id.
func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// queryInt returns a pointer to the integer value of a query parameter, or
// nil when the parameter is absent or not a number. Pagination treats nil as
// "use the default".
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
