package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ad-campaign-analyzer/internal/engine"
	"ad-campaign-analyzer/internal/observability"
	"ad-campaign-analyzer/internal/report"
	"ad-campaign-analyzer/internal/storage"
)

// CampaignStore is the persistence surface the handlers need.
type CampaignStore interface {
	CreateCampaign(ctx context.Context, c storage.Campaign) (storage.Campaign, error)
	ListCampaigns(ctx context.Context) ([]storage.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (storage.Campaign, bool, error)
	DeleteCampaign(ctx context.Context, id int64) (bool, error)
	Seed(ctx context.Context) (int, error)
}

type Handler struct {
	store CampaignStore
}

func NewHandler(store CampaignStore) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// toEngineCampaign converts a stored row, recomputing the derived
// metrics from the raw counters so the engine never sees stale values.
func toEngineCampaign(c storage.Campaign) engine.Campaign {
	m := engine.ComputeMetrics(c.Budget, c.Impressions, c.Clicks, c.Conversions)
	return engine.Campaign{
		ID:             c.ID,
		Name:           c.Name,
		Budget:         c.Budget,
		Impressions:    c.Impressions,
		Clicks:         c.Clicks,
		Conversions:    c.Conversions,
		CTR:            m.CTR,
		CPC:            m.CPC,
		ConversionRate: m.ConversionRate,
	}
}

func campaignID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Ad Campaign Analyzer API is running",
		"version": "1.0.0",
		"endpoints": []string{
			"GET    /api/campaigns      - List all campaigns",
			"POST   /api/campaigns      - Create new campaign",
			"GET    /api/campaigns/{id} - Get single campaign",
			"DELETE /api/campaigns/{id} - Delete campaign",
			"GET    /api/diagnose/{id}  - Run diagnostics on campaign",
			"GET    /api/insights       - Get all campaign insights",
			"GET    /api/report/{id}    - Export campaign report",
			"POST   /api/seed           - Load example campaigns",
		},
	})
}

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.ListCampaigns(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list campaigns")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

type createCampaignRequest struct {
	Name        *string  `json:"name"`
	Budget      *float64 `json:"budget"`
	Impressions *int64   `json:"impressions"`
	Clicks      *int64   `json:"clicks"`
	Conversions *int64   `json:"conversions"`
}

// CreateCampaign validates input, derives the metrics and persists the
// record. This handler is the engine's input-sanitization boundary:
// negative numbers are normalized to 0 before anything downstream sees
// them.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	required := []struct {
		field   string
		missing bool
	}{
		{"name", req.Name == nil},
		{"budget", req.Budget == nil},
		{"impressions", req.Impressions == nil},
		{"clicks", req.Clicks == nil},
		{"conversions", req.Conversions == nil},
	}
	for _, rq := range required {
		if rq.missing {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("missing field: %s", rq.field))
			return
		}
	}

	budget := maxFloat(*req.Budget, 0)
	impressions := maxInt(*req.Impressions, 0)
	clicks := maxInt(*req.Clicks, 0)
	conversions := maxInt(*req.Conversions, 0)
	m := engine.ComputeMetrics(budget, impressions, clicks, conversions)

	created, err := h.store.CreateCampaign(r.Context(), storage.Campaign{
		Name:           *req.Name,
		Budget:         budget,
		Impressions:    impressions,
		Clicks:         clicks,
		Conversions:    conversions,
		CTR:            m.CTR,
		CPC:            m.CPC,
		ConversionRate: m.ConversionRate,
	})
	if err != nil {
		log.Error().Err(err).Msg("create campaign")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Campaign created!",
		"campaign": created,
	})
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}
	c, ok, err := h.store.GetCampaign(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("campaign_id", id).Msg("get campaign")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}
	deleted, err := h.store.DeleteCampaign(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("campaign_id", id).Msg("delete campaign")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted successfully"})
}

func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}
	c, ok, err := h.store.GetCampaign(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("campaign_id", id).Msg("get campaign for diagnosis")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}

	d := engine.Diagnose(toEngineCampaign(c))
	observability.DiagnosesTotal.WithLabelValues(string(d.Status)).Inc()
	log.Debug().
		Int64("campaign_id", id).
		Int("health_score", d.HealthScore).
		Int("issues", len(d.Issues)).
		Msg("diagnosis complete")

	writeJSON(w, http.StatusOK, d)
}

type insightRow struct {
	CampaignID   int64  `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	IssuesFound  int    `json:"issues_found"`
	HealthScore  int    `json:"health_score"`
	TopIssue     string `json:"top_issue"`
}

func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.ListCampaigns(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list campaigns for insights")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	insights := make([]insightRow, 0, len(campaigns))
	for _, c := range campaigns {
		d := engine.Diagnose(toEngineCampaign(c))
		observability.DiagnosesTotal.WithLabelValues(string(d.Status)).Inc()

		top := "None"
		if len(d.Issues) > 0 {
			top = string(d.Issues[0].Kind)
		}
		insights = append(insights, insightRow{
			CampaignID:   c.ID,
			CampaignName: c.Name,
			IssuesFound:  len(d.Issues),
			HealthScore:  d.HealthScore,
			TopIssue:     top,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}
	c, ok, err := h.store.GetCampaign(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Int64("campaign_id", id).Msg("get campaign for report")
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}

	ec := toEngineCampaign(c)
	d := engine.Diagnose(ec)
	observability.DiagnosesTotal.WithLabelValues(string(d.Status)).Inc()

	now := time.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(id, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Render(ec, d, now)))
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Seed(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("seed campaigns")
		writeError(w, http.StatusInternalServerError, "seed failed")
		return
	}
	log.Info().Int("count", count).Msg("seeded example campaigns")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Seeded %d example campaigns!", count),
	})
}

func maxFloat(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

func maxInt(v, floor int64) int64 {
	if v < floor {
		return floor
	}
	return v
}
