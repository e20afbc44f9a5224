package handlers

import (
	"net/http"

	"freelancehub/middleware"
	"freelancehub/services"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	timeline, err := parseTimeline(req.Timeline)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		Timeline:    timeline,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListForProject(r.Context(), chi.URLParam(r, "projectId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
