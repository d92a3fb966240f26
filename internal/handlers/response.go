package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tesBack/internal/models"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, models.OK(data))
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Result{Message: message})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func failErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), models.Fail(err))
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// caller returns the authenticated user id or writes 401.
func caller(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, _, ok := Identity(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}

// pathID parses the named path id or writes 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, ok := intParam(r, name)
	if !ok {
		fail(w, http.StatusBadRequest, "Invalid "+name)
	}
	return id, ok
}
