// Package handler exposes the JSON API over the workflow services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/score"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the sentinel errors onto HTTP statuses. Anything
// unrecognized is a storage fault and stays opaque to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownMember),
		errors.Is(err, model.ErrActivityNotFound),
		errors.Is(err, model.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrActivityDecided),
		errors.Is(err, model.ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrInvalidTarget),
		errors.Is(err, model.ErrInvalidDecision),
		errors.Is(err, score.ErrInvalidPoints):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "persistence failed")
	}
}
