package handlers

import (
	"net/http"
	"slices"

	"freelancehub/middleware"
	"freelancehub/models"
	"freelancehub/services"
	"freelancehub/storage"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type RouterConfig struct {
	Services       *services.Services
	Authenticator  *middleware.Authenticator
	Store          storage.Store
	AuthLimiter    middleware.Limiter
	UploadMaxBytes int64
	CORSOrigins    []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	svc := cfg.Services
	authn := cfg.Authenticator

	authHandler := NewAuthHandler(svc.Auth, authn)
	userHandler := NewUserHandler(svc.Users)
	projectHandler := NewProjectHandler(svc.Projects)
	requestHandler := NewRequestHandler(svc.Requests)
	taskHandler := NewTaskHandler(svc.Tasks)
	submissionHandler := NewSubmissionHandler(svc.Submissions, cfg.Store, cfg.UploadMaxBytes)
	adminHandler := NewAdminHandler(svc.Stats)
	dashboardHandler := NewDashboardHandler(svc.Stats)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Stored archives
	router.Get("/"+storage.PublicPrefix+"/{name}", submissionHandler.Download)

	router.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Group(func(r chi.Router) {
			if cfg.AuthLimiter != nil {
				r.Use(middleware.RateLimit(cfg.AuthLimiter))
			}
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		})
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authn.Middleware)

			r.Get("/auth/me", authHandler.Me)

			// Any authenticated user
			r.Get("/projects", projectHandler.List)
			r.Get("/projects/{id}", projectHandler.Get)
			r.Get("/tasks/project/{projectId}", taskHandler.ListForProject)
			r.Get("/submissions/task/{taskId}", submissionHandler.ListForTask)

			// Buyer only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleBuyer))
				r.Post("/projects", projectHandler.Create)
				r.Get("/projects/buyer/my-projects", projectHandler.MyProjects)
				r.Put("/projects/{id}/assign", projectHandler.Assign)
				r.Put("/projects/{id}/complete", projectHandler.Complete)
				r.Get("/requests/project/{projectId}", requestHandler.ListForProject)
				r.Put("/submissions/{id}/review", submissionHandler.Review)
				r.Get("/buyer/stats", dashboardHandler.BuyerStats)
			})

			// Solver only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleSolver))
				r.Post("/requests", requestHandler.Create)
				r.Post("/tasks", taskHandler.Create)
				r.Post("/submissions/{id}", submissionHandler.Create)
				r.Get("/solver/stats", dashboardHandler.SolverStats)
			})

			// Admin only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/users", userHandler.List)
				r.Put("/users/{id}/role", userHandler.UpdateRole)
				r.Get("/admin/stats", adminHandler.Stats)
				r.Get("/admin/projects", adminHandler.Projects)
				r.Get("/admin/projects/export", adminHandler.ExportProjects)
			})
		})
	})

	return cors.New(corsOptions(cfg.CORSOrigins)).Handler(router)
}

// corsOptions only allows credentialed requests from explicitly listed
// origins; a wildcard list serves anonymous cross-origin requests.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}
