package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/voltpoint/charge-station-api/internal/payload"
)

const requestTimeout = 60 * time.Second

// NewRouter wires every endpoint under /api with the shared middleware stack.
// authMiddleware guards every route that requires a valid token.
func NewRouter(
	authHandler *AuthHandler,
	passwordResetHandler *PasswordResetHandler,
	stationHandler *StationHandler,
	authMiddleware func(http.Handler) http.Handler,
	logger *zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, payload.MessageResponse{Message: "API is running"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", passwordResetHandler.ForgotPassword)
			r.Put("/reset-password/{resettoken}", passwordResetHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Get("/me", authHandler.Me)
				r.Put("/update", authHandler.UpdateProfile)
				r.Delete("/delete", authHandler.DeleteAccount)
				r.Put("/update-password", authHandler.UpdatePassword)
			})
		})

		r.Route("/stations", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", stationHandler.Create)
			r.Get("/", stationHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", stationHandler.Get)
				r.Put("/", stationHandler.Update)
				r.Delete("/", stationHandler.Delete)
			})
		})
	})

	return r
}
