package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/store"
	"github.com/parltrack/parltrack/internal/task"
)

type MemberHandler struct {
	members *store.MemberStore
	tasks   *task.Service
	logger  *slog.Logger
}

func NewMemberHandler(members *store.MemberStore, tasks *task.Service, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, tasks: tasks, logger: logger}
}

// List handles GET /api/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "persistence failed")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

type createMemberRequest struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Committee string `json:"committee"`
	Login     string `json:"login"`
	Password  string `json:"password"`
}

// Create handles POST /api/members (admin only)
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Login = strings.TrimSpace(req.Login)
	if req.Name == "" || req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, login and password are required")
		return
	}

	created, err := h.members.Insert(&model.Member{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Position:  req.Position,
		Committee: req.Committee,
		Login:     req.Login,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Error("create member", "error", err)
		writeError(w, http.StatusInternalServerError, "persistence failed")
		return
	}

	h.logger.Info("member created", "member_id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

type pointsRequest struct {
	Points int `json:"points"`
}

// Award handles POST /api/members/{id}/award (admin only)
func (h *MemberHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.tasks.AwardMember(r.PathValue("id"), req.Points)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Penalty handles POST /api/members/{id}/penalty (admin only)
func (h *MemberHandler) Penalty(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.tasks.PenalizeMember(r.PathValue("id"), req.Points)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
