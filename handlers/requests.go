package handlers

import (
	"net/http"

	"freelancehub/middleware"
	"freelancehub/services"

	"github.com/go-chi/chi/v5"
)

type RequestHandler struct {
	requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	request, err := h.requests.Create(r.Context(), user.ID, req.ProjectID, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (h *RequestHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	requests, err := h.requests.ListForProject(r.Context(), chi.URLParam(r, "projectId"), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}
