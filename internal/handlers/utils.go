package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/blood-heros/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const maxJSONBody = 1 << 20

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads a single JSON value from the request body into dst.
// An empty body leaves dst untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// responder maps service errors onto HTTP responses.
type responder struct {
	logger logrus.FieldLogger
}

// fail writes the response for err. Anything that is not a known client
// error is treated as a storage failure, logged, and reported as action.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error, resource, action string) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, storage.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, "invalid "+resource+" id")
	case errors.Is(err, store.ErrNotFound), errors.Is(err, storage.ErrObjectNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, resource+" already exists")
	default:
		rs.logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error(action)
		writeError(w, http.StatusInternalServerError, action)
	}
}

func idParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// normalizeBloodGroup restores a "+" that was sent unescaped in a query
// string and therefore decoded as a space.
func normalizeBloodGroup(raw string) string {
	if raw == "" {
		return ""
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(raw, " ") && !strings.HasSuffix(trimmed, "+") && !strings.HasSuffix(trimmed, "-") {
		return trimmed + "+"
	}
	return trimmed
}
