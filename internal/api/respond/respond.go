// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vpsports/scorekeeper/internal/cricket"
)

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	} `json:"error"`
}

// WriteJSON writes pre-encoded JSON with an ETag. Live data changes on every
// scorer update, so clients must revalidate each time.
func WriteJSON(w http.ResponseWriter, data []byte, etag string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteNotModified sends a 304 with the matching ETag.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends a structured JSON error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail sends a structured error with additional detail.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Detail = detail
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// WriteJSONObject marshals a Go value to JSON and writes it.
func WriteJSONObject(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind cricket.Kind) int {
	switch kind {
	case cricket.KindValidation:
		return http.StatusBadRequest
	case cricket.KindNotFound:
		return http.StatusNotFound
	case cricket.KindInvalidTransition:
		return http.StatusConflict
	case cricket.KindConstraintViolation:
		return http.StatusUnprocessableEntity
	case cricket.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes err in the standard error shape. Storage failures and
// foreign errors hide their cause from clients.
func WriteAppError(w http.ResponseWriter, err error) {
	var e *cricket.Error
	if !errors.As(err, &e) {
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	if e.Kind == cricket.KindStorageUnavailable {
		WriteError(w, StatusFor(e.Kind), e.Code, "Storage is unavailable, try again later")
		return
	}
	detail := ""
	if e.Err != nil {
		detail = e.Err.Error()
	}
	WriteErrorDetail(w, StatusFor(e.Kind), e.Code, e.Message, detail)
}
