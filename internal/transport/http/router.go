package http

import (
	"net/http"

	"github.com/email-otp-api/internal/application/verification"
	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/transport/http/handler"
	"github.com/email-otp-api/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	svc := verification.NewService(verification.ServiceDeps{
		Store:         deps.Store,
		Mailer:        deps.Mailer,
		Signer:        deps.Signer,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	healthH := handler.NewHealthHandler()
	verifH := handler.NewVerificationHandler(svc)
	trackH := handler.NewTrackingHandler(svc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Status)
		r.Post("/send-verification-code", verifH.SendCode)
		r.Post("/verify-code", verifH.Verify)
		r.Get("/track/{trackingID}", trackH.Pixel)
	})

	// Embedded two-step form flow.
	r.Handle("/*", web.Handler())

	return r
}
