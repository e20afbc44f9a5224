package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"freelancehub/exceptions"
	"freelancehub/models"
	"freelancehub/services"
)

type AdminHandler struct {
	stats *services.StatsService
}

func NewAdminHandler(stats *services.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Platform(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.stats.AllProjects(r.Context(), "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// ExportProjects writes all projects, optionally filtered by ?status=, as CSV.
func (h *AdminHandler) ExportProjects(w http.ResponseWriter, r *http.Request) {
	status := models.ProjectStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.ProjectOpen, models.ProjectAssigned, models.ProjectCompleted:
	default:
		writeError(w, r, exceptions.ErrInvalidStatus)
		return
	}

	projects, err := h.stats.AllProjects(r.Context(), status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("projects_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"ID", "Title", "Status", "Budget", "Buyer", "Solver", "Created"})

	for _, p := range projects {
		buyer := ""
		solver := ""
		if p.Buyer != nil {
			buyer = p.Buyer.Username
		}
		if p.AssignedSolver != nil {
			solver = p.AssignedSolver.Username
		}
		writer.Write([]string{
			p.ID,
			p.Title,
			string(p.Status),
			strconv.FormatFloat(p.Budget, 'f', 2, 64),
			buyer,
			solver,
			p.CreatedAt.UTC().Format("2006-01-02"),
		})
	}
}
