package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/parltrack/parltrack/internal/auth"
	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/store"
	"github.com/parltrack/parltrack/internal/task"
)

type TaskHandler struct {
	tasks  *store.TaskStore
	svc    *task.Service
	logger *slog.Logger
}

func NewTaskHandler(tasks *store.TaskStore, svc *task.Service, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, svc: svc, logger: logger}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List()
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "persistence failed")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

type createTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	AssigneeID  string             `json:"assignee_id"`
	Committee   string             `json:"committee"`
	DueDate     time.Time          `json:"due_date"`
	Priority    model.TaskPriority `json:"priority"`
}

// Create handles POST /api/tasks (admin only)
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := h.svc.Create(task.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Committee:   req.Committee,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type completeTaskRequest struct {
	ResultText string `json:"result_text"`
}

// Complete handles POST /api/tasks/{id}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req completeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	done, err := h.svc.Complete(r.PathValue("id"), req.ResultText, ac)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

// Award handles POST /api/tasks/{id}/award (admin only)
func (h *TaskHandler) Award(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.svc.Award(r.PathValue("id"), req.Points); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "awarded"})
}
