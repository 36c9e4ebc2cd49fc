package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/parltrack/parltrack/internal/activity"
	"github.com/parltrack/parltrack/internal/auth"
	"github.com/parltrack/parltrack/internal/model"
)

type ActivityHandler struct {
	activities *activity.Service
	logger     *slog.Logger
}

func NewActivityHandler(activities *activity.Service, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

type submitActivityRequest struct {
	Type        model.ActivityType `json:"type"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

var activityTypes = map[model.ActivityType]bool{
	model.ActivityProject:   true,
	model.ActivityMedia:     true,
	model.ActivityMeeting:   true,
	model.ActivityCommunity: true,
	model.ActivityEvent:     true,
	model.ActivityOther:     true,
}

// Submit handles POST /api/activities. The report is always filed for the
// session's own member; admins have no member identity to file against.
func (h *ActivityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	memberID := auth.MemberID(r.Context())
	if memberID == "" {
		writeError(w, http.StatusForbidden, "only members submit reports")
		return
	}

	var req submitActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !activityTypes[req.Type] {
		writeError(w, http.StatusBadRequest, "unknown activity type")
		return
	}

	act, err := h.activities.Submit(memberID, req.Type, req.Title, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, act)
}

type verifyActivityRequest struct {
	Decision model.ActivityStatus `json:"decision"`
}

// Verify handles POST /api/members/{id}/activities/{activity_id}/verify
// (admin only).
func (h *ActivityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	updated, err := h.activities.Verify(r.PathValue("id"), r.PathValue("activity_id"), req.Decision)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
