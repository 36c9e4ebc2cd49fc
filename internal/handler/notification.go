package handler

import (
	"net/http"

	"github.com/parltrack/parltrack/internal/auth"
	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/notify"
)

type NotificationHandler struct {
	feed *notify.Feed
}

func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List handles GET /api/notifications. Admin sessions see the ADMIN
// broadcasts, member sessions their own entries.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	entries := h.feed.For(ac.MemberID, ac.Role == model.RoleAdmin)
	if entries == nil {
		entries = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.feed.MarkRead(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
