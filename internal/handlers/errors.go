package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/crucial707/blog-api/internal/service"
	"github.com/crucial707/blog-api/internal/store"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "Internal server error"

// JSONError sends {"message": message}.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

// JSONValidationError sends "message" and, when present, field-level "fields".
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	out := map[string]interface{}{"message": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	writeJSON(w, status, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service and store errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	var serr *store.StorageError
	switch {
	case errors.As(err, &verr):
		JSONValidationError(w, verr.Message, verr.Fields, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		JSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrConflict):
		JSONError(w, "Email already registered", http.StatusConflict)
	case errors.As(err, &serr):
		slog.Error("storage failure",
			"request_id", chimw.GetReqID(r.Context()),
			"op", serr.Op,
			"path", serr.Path,
			"error", serr.Err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	default:
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
// It writes the error response itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		JSONError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	JSONError(w, "Invalid JSON", http.StatusBadRequest)
	return false
}
