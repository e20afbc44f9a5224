package handlers

import (
	"net/http"

	"freelancehub/middleware"
	"freelancehub/services"
)

// DashboardHandler serves the per-role summary numbers.
type DashboardHandler struct {
	stats *services.StatsService
}

func NewDashboardHandler(stats *services.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) BuyerStats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	stats, err := h.stats.Buyer(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) SolverStats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	stats, err := h.stats.Solver(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
