// Package seed fills a company with demo campaigns, sessions and conversions
// so a fresh dashboard has something to show.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metricaclick/attribution-go/internal/apperr"
	"github.com/metricaclick/attribution-go/internal/models"
	"github.com/metricaclick/attribution-go/internal/store"
	"github.com/metricaclick/attribution-go/internal/tracking"
)

type Service struct {
	st  store.Store
	now func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{st: st, now: time.Now}
}

// Summary reports how many demo rows were written.
type Summary struct {
	Campaigns   int `json:"campaigns"`
	Sessions    int `json:"sessions"`
	Conversions int `json:"conversions"`
}

var demoCampaigns = []models.Campaign{
	{Name: "Black Friday Meta Ads", Channel: "Meta Ads", Investment: 2500},
	{Name: "Google Search Principal", Channel: "Google Ads", Investment: 1800},
	{Name: "TikTok Viral Video", Channel: "TikTok Ads", Investment: 800},
	{Name: "Google Shopping", Channel: "Google Ads", Investment: 1200},
	{Name: "Meta Retargeting", Channel: "Meta Ads", Investment: 900},
}

var (
	demoSources  = []string{"facebook", "google", "tiktok", "instagram", "direct"}
	demoMediums  = []string{"cpc", "social", "organic", "referral"}
	demoDevices  = []string{"desktop", "mobile", "tablet"}
	demoProducts = []string{"Curso Digital Marketing", "Ebook Growth", "Mentoria 1:1", "Workshop Online", "Consultoria"}
	demoVendors  = []string{"hotmart", "kiwify", "eduzz", "monetizze"}
)

// Run writes demo data spread over the trailing 30 days. About 70% of the
// conversions are linked to one of the generated sessions.
func (s *Service) Run(ctx context.Context, companyID string) (Summary, error) {
	if strings.TrimSpace(companyID) == "" {
		return Summary{}, apperr.Missing("company_id")
	}
	companyID = strings.TrimSpace(companyID)

	var sum Summary
	for _, c := range demoCampaigns {
		c.ID = uuid.NewString()
		c.CompanyID = companyID
		c.Period = s.daysAgo(rand.Intn(30))
		if err := s.st.InsertCampaign(ctx, c); err != nil {
			return sum, apperr.Persistence("insert campaign", err)
		}
		sum.Campaigns++
	}

	sessionIDs := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		at := s.daysAgo(rand.Intn(30)).Add(time.Duration(rand.Intn(24)) * time.Hour)
		src := demoSources[rand.Intn(len(demoSources))]
		sess := models.Session{
			SessionID:  tracking.NewSessionID(at),
			CompanyID:  companyID,
			IP:         fmt.Sprintf("192.168.%d.%d", rand.Intn(255), rand.Intn(255)),
			DeviceType: demoDevices[rand.Intn(len(demoDevices))],
			CreatedAt:  at,
		}
		if rand.Float64() > 0.2 {
			sess.UTMSource = src
		}
		if rand.Float64() > 0.3 {
			sess.UTMMedium = demoMediums[rand.Intn(len(demoMediums))]
		}
		if rand.Float64() > 0.4 {
			sess.UTMCampaign = fmt.Sprintf("campaign_%d", rand.Intn(10))
		}
		if src == "google" && rand.Float64() > 0.5 {
			sess.GCLID = "gclid_" + uuid.NewString()[:15]
		}
		if src == "facebook" && rand.Float64() > 0.5 {
			sess.FBCLID = "fbclid_" + uuid.NewString()[:15]
		}
		if err := s.st.InsertSession(ctx, sess); err != nil {
			return sum, apperr.Persistence("insert session", err)
		}
		sessionIDs = append(sessionIDs, sess.SessionID)
		sum.Sessions++
	}

	for i := 0; i < 45; i++ {
		at := s.daysAgo(rand.Intn(30)).Add(time.Duration(rand.Intn(24)) * time.Hour)
		conv := models.Conversion{
			ID:          uuid.NewString(),
			CompanyID:   companyID,
			Value:       float64(int(rand.Float64()*50000+5000)) / 100,
			Product:     demoProducts[rand.Intn(len(demoProducts))],
			Source:      demoVendors[rand.Intn(len(demoVendors))],
			ConvertedAt: at,
		}
		if rand.Float64() > 0.3 {
			id := sessionIDs[rand.Intn(len(sessionIDs))]
			conv.SessionID = &id
		}
		if err := s.st.InsertConversion(ctx, conv); err != nil {
			return sum, apperr.Persistence("insert conversion", err)
		}
		sum.Conversions++
	}
	return sum, nil
}

func (s *Service) daysAgo(n int) time.Time {
	return s.now().UTC().AddDate(0, 0, -n)
}
