package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskflowhq/projectd/internal/config"
	"github.com/taskflowhq/projectd/internal/db"
	"github.com/taskflowhq/projectd/internal/handler"
	"github.com/taskflowhq/projectd/internal/member"
	"github.com/taskflowhq/projectd/internal/middleware"
	"github.com/taskflowhq/projectd/internal/nats"
	"github.com/taskflowhq/projectd/internal/project"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-User-Email"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health checks (no auth)
	healthHandler := handler.NewHealthHandler(s.db, s.nats)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	store := db.NewStore(s.db)

	var projectEvents project.Events
	var memberEvents member.Events
	if s.nats != nil {
		publisher := nats.NewPublisher(s.nats.JetStream())
		projectEvents = publisher
		memberEvents = publisher
	}

	projectSvc := project.NewService(store, projectEvents, s.logger)
	memberSvc := member.NewService(store, s.resolver, memberEvents, s.logger)

	projectHandler := handler.NewProjectHandler(projectSvc, s.logger)
	memberHandler := handler.NewMemberHandler(memberSvc, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		if s.cfg.AuthMode == config.AuthModeClerk {
			r.Use(middleware.ClerkAuth(s.resolver))
		} else {
			r.Use(middleware.GatewayAuth)
		}
		r.Use(s.rateLimiter.Handler)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", projectHandler.Get)
				r.Put("/", projectHandler.Update)
				r.Delete("/", projectHandler.Delete)
				r.Get("/statuses", projectHandler.ListStatuses)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", memberHandler.List)
					r.Post("/", memberHandler.Add)
					r.Post("/by-email", memberHandler.AddByEmail)
					r.Put("/{userID}/role", memberHandler.UpdateRole)
					r.Delete("/{userID}", memberHandler.Remove)
				})
			})
		})
	})

	return r
}
