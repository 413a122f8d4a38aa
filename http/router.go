package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *SimulationHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Calculators are anonymous and limited per client address.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(RateLimitMiddleware(limiter, ClientIPKey))
			}
			r.Post("/subsidy", h.Subsidy)
			r.Post("/simulate", h.Simulate)
			r.Get("/simulations/{id}", h.GetByID)
			r.Delete("/simulations/{id}", h.Delete)
		})

		// Saved simulations belong to a user and share that user's budget.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(RateLimitMiddleware(limiter, UserEmailKey))
			}
			r.Post("/simulations", h.Create)
			r.Get("/users/{email}/simulations", h.ListByUser)
		})
	})
	return r
}
