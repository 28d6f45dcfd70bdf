package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/saveone/server/internal/auth"
	"github.com/saveone/server/internal/documents"
	"github.com/saveone/server/internal/http/handlers"
	"github.com/saveone/server/internal/middleware"
	"github.com/saveone/server/internal/scan"
)

// RouterDeps holds everything the router needs to build its handlers
type RouterDeps struct {
	Logger         zerolog.Logger
	AuthService    *auth.AuthService
	Documents      *documents.Service
	Scans          scan.Store
	AllowedOrigins []string
	BodyLimit      int64
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(deps.AllowedOrigins))
	if deps.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(deps.BodyLimit))
	}

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler()
	r.Get("/health", healthHandler.ServeHTTP)

	userHandler := handlers.NewUserHandler(deps.AuthService)
	documentHandler := handlers.NewDocumentHandler(deps.Documents)
	fingerprintHandler := handlers.NewFingerprintHandler(deps.AuthService, deps.Scans)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", userHandler.HandleSignup)
			r.Post("/signin", userHandler.HandleSignin)
			r.Put("/{id}/profile-picture", userHandler.HandleUpdateProfilePicture)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/upload", documentHandler.HandleUpload)
			// GET addresses a user id, DELETE a document id; chi needs one param name per segment
			r.Get("/{id}", documentHandler.HandleList)
			r.Get("/{id}/count", documentHandler.HandleCount)
			r.Delete("/{id}", documentHandler.HandleDelete)
		})

		r.Route("/fingerprint", func(r chi.Router) {
			r.Post("/check", fingerprintHandler.HandleCheck)
			r.Post("/register", fingerprintHandler.HandleRegister)
			r.Post("/scan", fingerprintHandler.HandleScan)
			r.Get("/latest", fingerprintHandler.HandleLatest)
			r.Delete("/latest", fingerprintHandler.HandleClearLatest)
		})
	})

	return r
}
