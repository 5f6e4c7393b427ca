// Package attribution records conversions reported by sales-platform webhooks
// and links them to prior sessions.
//
// The matching rule is a deterministic single-hop join, in priority order:
// an explicit session_id is used unconditionally; else the most recent
// session of the same company inside the trailing window that matches the
// UTM filter; else no link. No scoring, no multi-touch.
package attribution

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metricaclick/attribution-go/internal/apperr"
	"github.com/metricaclick/attribution-go/internal/models"
	"github.com/metricaclick/attribution-go/internal/observability"
	"github.com/metricaclick/attribution-go/internal/store"
)

// DefaultWindow is the trailing period searched for UTM matches.
const DefaultWindow = 30 * 24 * time.Hour

type Service struct {
	st     store.Store
	log    *slog.Logger
	window time.Duration
	now    func() time.Time
}

func NewService(st store.Store, log *slog.Logger, window time.Duration) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{st: st, log: log, window: window, now: time.Now}
}

// WebhookInput is the payload sent by the sales platform.
type WebhookInput struct {
	CompanyID   string `json:"company_id"`
	Value       Amount `json:"value"`
	Product     string `json:"product"`
	Source      string `json:"source"`
	Email       string `json:"email"`
	UTMSource   string `json:"utm_source"`
	UTMCampaign string `json:"utm_campaign"`
	SessionID   string `json:"session_id"`
}

// Record validates the webhook, resolves attribution and writes one
// conversion row. Not idempotent: a retried delivery creates a duplicate
// conversion (known gap, no dedup key exists upstream).
func (s *Service) Record(ctx context.Context, in WebhookInput) (models.Conversion, error) {
	switch {
	case strings.TrimSpace(in.CompanyID) == "":
		return models.Conversion{}, apperr.Missing("company_id")
	case !in.Value.OK:
		return models.Conversion{}, apperr.Missing("value")
	case strings.TrimSpace(in.Product) == "":
		return models.Conversion{}, apperr.Missing("product")
	}

	companyID := strings.TrimSpace(in.CompanyID)
	matched, kind, err := s.resolve(ctx, companyID, in)
	if err != nil {
		return models.Conversion{}, err
	}

	conv := models.Conversion{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		SessionID:   matched,
		Value:       in.Value.Float,
		Product:     strings.TrimSpace(in.Product),
		Source:      coalesce(in.Source, "unknown"),
		ConvertedAt: s.now().UTC(),
	}
	if err := s.st.InsertConversion(ctx, conv); err != nil {
		return models.Conversion{}, apperr.Persistence("insert conversion", err)
	}
	observability.ConversionRecorded(kind)
	s.log.Info("conversion recorded",
		slog.String("conversion_id", conv.ID),
		slog.String("company_id", conv.CompanyID),
		slog.String("match", string(kind)),
		slog.Float64("value", conv.Value))
	return conv, nil
}

// resolve picks the session to credit, or nil. The lookup never leaves the
// caller's company and never verifies an explicit id.
func (s *Service) resolve(ctx context.Context, companyID string, in WebhookInput) (*string, observability.MatchKind, error) {
	if id := strings.TrimSpace(in.SessionID); id != "" {
		return &id, observability.MatchExplicit, nil
	}

	utmSource := strings.TrimSpace(in.UTMSource)
	utmCampaign := strings.TrimSpace(in.UTMCampaign)
	email := strings.TrimSpace(in.Email)
	if utmSource == "" && utmCampaign == "" && email == "" {
		return nil, observability.MatchNone, nil
	}

	// email alone still triggers the search, falling through to the
	// "has any utm_source" filter
	since := s.now().Add(-s.window)
	sess, err := s.st.MatchSession(ctx, companyID, since, store.SessionFilter{
		UTMSource:   utmSource,
		UTMCampaign: utmCampaign,
	})
	if err != nil {
		return nil, observability.MatchNone, apperr.Persistence("match session", err)
	}
	if sess == nil {
		return nil, observability.MatchNone, nil
	}
	id := sess.SessionID
	return &id, observability.MatchUTM, nil
}

func coalesce(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
