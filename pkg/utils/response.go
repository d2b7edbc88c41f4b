package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"umd-backend/internal/errs"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Message writes a simple {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error maps a classified error to its HTTP status. Unclassified errors
// are logged server-side and surface only as a generic internal error.
func Error(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	if kind == errs.KindInternal {
		log.Printf("[HTTP] internal error: %v", err)
	}
	JSON(w, StatusFor(kind), map[string]string{"error": errs.MessageOf(err)})
}

// StatusFor returns the HTTP status code for an error kind.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInvalidState:
		return http.StatusUnprocessableEntity
	case errs.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
