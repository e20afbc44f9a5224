package handlers

import (
	"net/http"

	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.Create(r.Context(), user.ID, services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	query := r.URL.Query()

	projects, err := h.projects.List(r.Context(), user, models.ProjectFilter{
		Mine:     queryFlag(query.Get("mine")),
		Open:     queryFlag(query.Get("open")),
		Assigned: queryFlag(query.Get("assigned")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) MyProjects(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	projects, err := h.projects.ListByBuyer(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Assign(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.Assign(r.Context(), chi.URLParam(r, "id"), req.SolverID, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

type completeResponse struct {
	Message string          `json:"message"`
	Project *models.Project `json:"project"`
}

func (h *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	project, err := h.projects.Complete(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, completeResponse{
		Message: "Project marked as completed",
		Project: project,
	})
}
