package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/Efeg35/contravo-sub006/internal/auth"
	"github.com/Efeg35/contravo-sub006/internal/contract"
	"github.com/Efeg35/contravo-sub006/internal/notification"
	"github.com/Efeg35/contravo-sub006/internal/transport/middleware"
	"github.com/Efeg35/contravo-sub006/internal/transport/swagger"
	"github.com/Efeg35/contravo-sub006/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, authService *auth.Service, userHandler *user.Handler, contractHandler *contract.Handler, notificationHandler *notification.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	rbac := authService.RBACAuthorization()

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user and user enumeration
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
					pr.Group(func(ur chi.Router) {
						ur.Use(rbac.RequirePermission("users.manage"))
						ur.Get("/users", userHandler.ListUsers)
					})
				}

				// Contract routes
				if contractHandler != nil {
					pr.Route("/contracts", func(cr chi.Router) {
						cr.Post("/", contractHandler.CreateContract)      // POST /contracts
						cr.Get("/", contractHandler.ListContracts)        // GET /contracts
						cr.Get("/{id}", contractHandler.GetContract)      // GET /contracts/:id
						cr.Patch("/{id}", contractHandler.UpdateContract) // PATCH /contracts/:id

						// Workflow resolution and execution
						cr.Get("/{id}/next-action", contractHandler.NextAction)
						cr.Post("/{id}/actions/{action}", contractHandler.ApplyAction)

						// Archiving requires the dedicated permission
						cr.Group(func(ar chi.Router) {
							ar.Use(rbac.RequirePermission("contracts.archive"))
							ar.Delete("/{id}", contractHandler.ArchiveContract)
						})
					})
				}

				// Notification routes
				if notificationHandler != nil {
					pr.Route("/notifications", func(nr chi.Router) {
						nr.Get("/", notificationHandler.ListNotifications)
						nr.Patch("/{id}/read", notificationHandler.MarkRead)
					})
				}
			})
		}
	})
}
