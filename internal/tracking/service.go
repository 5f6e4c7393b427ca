// Package tracking ingests visitor sessions reported by the browser snippet.
package tracking

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/metricaclick/attribution-go/internal/apperr"
	"github.com/metricaclick/attribution-go/internal/models"
	"github.com/metricaclick/attribution-go/internal/observability"
	"github.com/metricaclick/attribution-go/internal/store"
)

type Service struct {
	st  store.Store
	log *slog.Logger
	now func() time.Time
}

func NewService(st store.Store, log *slog.Logger) *Service {
	return &Service{st: st, log: log, now: time.Now}
}

// RegisterInput carries the fields posted by the snippet plus the
// transport-derived client IP.
type RegisterInput struct {
	CompanyID   string `json:"company_id"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	GCLID       string `json:"gclid"`
	FBCLID      string `json:"fbclid"`
	Referrer    string `json:"referrer"`
	UserAgent   string `json:"user_agent"`
	IP          string `json:"-"`
}

// Register validates the input, derives device type, mints a fresh session id
// and writes one session row. Re-invocation always creates a new session;
// the snippet is responsible for not re-registering when it already holds an id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.Session, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return models.Session{}, apperr.Missing("company_id")
	}

	sess := models.Session{
		SessionID:   NewSessionID(s.now()),
		CompanyID:   strings.TrimSpace(in.CompanyID),
		UTMSource:   strings.TrimSpace(in.UTMSource),
		UTMMedium:   strings.TrimSpace(in.UTMMedium),
		UTMCampaign: strings.TrimSpace(in.UTMCampaign),
		GCLID:       strings.TrimSpace(in.GCLID),
		FBCLID:      strings.TrimSpace(in.FBCLID),
		Referrer:    strings.TrimSpace(in.Referrer),
		IP:          coalesce(in.IP, "unknown"),
		DeviceType:  DetectDevice(in.UserAgent),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.st.InsertSession(ctx, sess); err != nil {
		return models.Session{}, apperr.Persistence("insert session", err)
	}
	observability.SessionTracked(sess.DeviceType)
	s.log.Info("session tracked",
		slog.String("session_id", sess.SessionID),
		slog.String("company_id", sess.CompanyID),
		slog.String("utm_source", sess.UTMSource),
		slog.String("device_type", sess.DeviceType))
	return sess, nil
}

func coalesce(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
