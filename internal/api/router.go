package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ad-campaign-analyzer/internal/observability"
)

func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Measure)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/", h.Index)
	r.Route("/api", func(r chi.Router) {
		r.Get("/campaigns", h.ListCampaigns)
		r.Post("/campaigns", h.CreateCampaign)
		r.Get("/campaigns/{id}", h.GetCampaign)
		r.Delete("/campaigns/{id}", h.DeleteCampaign)
		r.Get("/diagnose/{id}", h.Diagnose)
		r.Get("/insights", h.Insights)
		r.Get("/report/{id}", h.Report)
		r.Post("/seed", h.Seed)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}
