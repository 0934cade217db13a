package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"engagesphere/internal/domain"
)

// envelope is the uniform response shape: {"success":bool,"message":string,...}.
type envelope map[string]interface{}

func respond(w http.ResponseWriter, status int, message string, extra envelope) {
	body := envelope{
		"success": status < 400,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, message string, extra envelope) {
	respond(w, http.StatusOK, message, extra)
}

func respondCreated(w http.ResponseWriter, message string, extra envelope) {
	respond(w, http.StatusCreated, message, extra)
}

// respondError maps domain errors onto the HTTP contract. Unknown errors are
// reported as 500 without leaking internals.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrNoPlanDuration),
		errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrPaymentNotCaptured):
		respond(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		respond(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrEmailNotVerified):
		respond(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		respond(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrPhoneInUse),
		errors.Is(err, domain.ErrAlreadyExists):
		respond(w, http.StatusConflict, err.Error(), nil)
	default:
		respond(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// decodeJSON parses the request body into dst; a malformed body is a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
