package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coursework_service/internal/errdefs"
)

var ErrBadRequest = errors.New("bad request")

func badRequest(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrBadRequest)
}

func mapErr(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, errdefs.ErrValidation),
		errors.Is(err, errdefs.ErrUnknownCourse),
		errors.Is(err, errdefs.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, errdefs.ErrCourseNotSelected),
		errors.Is(err, errdefs.ErrAssignmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrCourseAlreadySelected):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	w.Write(resp)
}

func parsePathParam(r *http.Request, key string) (string, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return "", badRequest(fmt.Sprintf("missing path param: %s", key))
	}
	return val, nil
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
