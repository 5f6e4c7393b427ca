package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/metricaclick/attribution-go/internal/apperr"
	"github.com/metricaclick/attribution-go/internal/attribution"
	"github.com/metricaclick/attribution-go/internal/reporting"
	"github.com/metricaclick/attribution-go/internal/seed"
	"github.com/metricaclick/attribution-go/internal/tracking"
	"github.com/metricaclick/attribution-go/internal/utils"
	"github.com/metricaclick/attribution-go/web"
)

type api struct {
	log  *slog.Logger
	trk  *tracking.Service
	attr *attribution.Service
	rep  *reporting.Service
	sd   *seed.Service
}

func NewRouter(log *slog.Logger, trk *tracking.Service, attr *attribution.Service, rep *reporting.Service, sd *seed.Service) http.Handler {
	a := &api{log: log, trk: trk, attr: attr, rep: rep, sd: sd}

	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	// the snippet and the webhooks call from anywhere; preflight must pass
	mux.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}).Handler)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/track-session", a.trackSession)
	mux.Post("/webhook", a.webhook)
	mux.Post("/seed-data", a.seedData)

	mux.Get("/reports/overview", a.overview)
	mux.Get("/reports/channels", a.channels)
	mux.Get("/reports/top-campaigns", a.topCampaigns)

	mux.Get("/tracker.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(web.TrackerJS)
	})

	return mux
}

func (a *api) trackSession(w http.ResponseWriter, r *http.Request) {
	var in tracking.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.writeError(r, w, &apperr.ValidationError{Field: "body", Msg: "invalid json"})
		return
	}
	if in.UserAgent == "" {
		in.UserAgent = r.UserAgent()
	}
	in.IP = tracking.ClientIP(r.Header)

	sess, err := a.trk.Register(r.Context(), in)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"session_id":      sess.SessionID,
		"tracking_active": true,
	})
}

func (a *api) webhook(w http.ResponseWriter, r *http.Request) {
	var in attribution.WebhookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.writeError(r, w, &apperr.ValidationError{Field: "body", Msg: "invalid json"})
		return
	}

	conv, err := a.attr.Record(r.Context(), in)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"conversion_id":   conv.ID,
		"matched_session": conv.SessionID,
	})
}

func (a *api) seedData(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CompanyID string `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.writeError(r, w, &apperr.ValidationError{Field: "body", Msg: "invalid json"})
		return
	}
	sum, err := a.sd.Run(r.Context(), in.CompanyID)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "seeded": sum})
}

func (a *api) overview(w http.ResponseWriter, r *http.Request) {
	companyID, month, err := reportParams(r)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	o, err := a.rep.Overview(r.Context(), companyID, month)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (a *api) channels(w http.ResponseWriter, r *http.Request) {
	companyID, month, err := reportParams(r)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	shares, err := a.rep.ChannelShares(r.Context(), companyID, month)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, shares)
}

func (a *api) topCampaigns(w http.ResponseWriter, r *http.Request) {
	companyID, month, err := reportParams(r)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	limit := atoiDef(r.URL.Query().Get("limit"), 0)
	rows, err := a.rep.TopCampaigns(r.Context(), companyID, month, limit)
	if err != nil {
		a.writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// reportParams pulls company_id (required) and month=YYYY-MM (default: current).
func reportParams(r *http.Request) (string, time.Time, error) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		return "", time.Time{}, apperr.Missing("company_id")
	}
	month := time.Now().UTC()
	if q := r.URL.Query().Get("month"); q != "" {
		t, err := time.Parse("2006-01", q)
		if err != nil {
			return "", time.Time{}, &apperr.ValidationError{Field: "month", Msg: "want YYYY-MM"}
		}
		month = t
	}
	return companyID, month, nil
}

func (a *api) writeError(r *http.Request, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	}
	a.log.Error("request failed",
		slog.String("rid", utils.RID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("err", err.Error()))
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.Encode(v)
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
