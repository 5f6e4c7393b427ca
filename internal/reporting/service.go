// Package reporting implements the dashboard read path: monthly overview,
// channel share and top campaigns for one company.
package reporting

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/metricaclick/attribution-go/internal/apperr"
	"github.com/metricaclick/attribution-go/internal/store"
)

type Service struct{ st store.Store }

func NewService(st store.Store) *Service { return &Service{st: st} }

// Overview sums the month's declared investment against attributed revenue.
type Overview struct {
	Investment float64 `json:"investment"`
	Revenue    float64 `json:"revenue"`
	ROI        float64 `json:"roi"` // percent: (revenue-investment)/investment*100
	Sales      int     `json:"sales"`
}

// ChannelShare is one slice of the session pie. Value is the percentage of
// total sessions, rounded per bucket; slices may not sum to exactly 100.
type ChannelShare struct {
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Sessions int    `json:"sessions"`
	Color    string `json:"color"`
}

// CampaignReport ranks one campaign for the top-ads table. ROI is a fraction
// (revenue/investment - 1), not a percentage.
type CampaignReport struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Channel    string  `json:"channel"`
	Investment float64 `json:"investment"`
	Revenue    float64 `json:"revenue"`
	Sales      int     `json:"sales"`
	ROI        float64 `json:"roi"`
}

// MonthWindow expands any instant into its calendar-month bounds.
func MonthWindow(t time.Time) (from, to time.Time) {
	t = t.UTC()
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}

func (s *Service) Overview(ctx context.Context, companyID string, month time.Time) (Overview, error) {
	from, to := MonthWindow(month)

	campaigns, err := s.st.CampaignsBetween(ctx, companyID, from, to)
	if err != nil {
		return Overview{}, apperr.Persistence("query campaigns", err)
	}
	conversions, err := s.st.ConversionsBetween(ctx, companyID, from, to)
	if err != nil {
		return Overview{}, apperr.Persistence("query conversions", err)
	}

	var o Overview
	for _, c := range campaigns {
		o.Investment += c.Investment
	}
	for _, c := range conversions {
		o.Revenue += c.Value
	}
	o.Sales = len(conversions)
	if o.Investment > 0 {
		o.ROI = round2((o.Revenue - o.Investment) / o.Investment * 100)
	}
	return o, nil
}

// Fixed dashboard palette per channel.
var channelColors = map[string]string{
	"Meta Ads":   "#1877F2",
	"Google Ads": "#4285F4",
	"TikTok Ads": "#000000",
	"Organic":    "#10B981",
}

// channelOrder keeps the response deterministic.
var channelOrder = []string{"Meta Ads", "Google Ads", "TikTok Ads", "Organic"}

// Channel buckets a utm_source into its marketing channel.
func Channel(utmSource string) string {
	src := strings.ToLower(strings.TrimSpace(utmSource))
	switch {
	case strings.Contains(src, "facebook"), strings.Contains(src, "meta"):
		return "Meta Ads"
	case strings.Contains(src, "google"):
		return "Google Ads"
	case strings.Contains(src, "tiktok"):
		return "TikTok Ads"
	}
	return "Organic"
}

func (s *Service) ChannelShares(ctx context.Context, companyID string, month time.Time) ([]ChannelShare, error) {
	from, to := MonthWindow(month)
	sessions, err := s.st.SessionsBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, apperr.Persistence("query sessions", err)
	}

	counts := map[string]int{}
	for _, sess := range sessions {
		counts[Channel(sess.UTMSource)]++
	}
	total := len(sessions)

	out := make([]ChannelShare, 0, len(counts))
	for _, name := range channelOrder {
		n, ok := counts[name]
		if !ok {
			continue
		}
		pct := 0
		if total > 0 {
			// cada bucket se redondea por separado; la suma puede no dar 100
			pct = int(math.Round(float64(n) / float64(total) * 100))
		}
		out = append(out, ChannelShare{Name: name, Value: pct, Sessions: n, Color: channelColors[name]})
	}
	return out, nil
}

func (s *Service) TopCampaigns(ctx context.Context, companyID string, month time.Time, limit int) ([]CampaignReport, error) {
	limit = clampLimit(limit, 5, 50)
	from, to := MonthWindow(month)

	campaigns, err := s.st.CampaignsBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, apperr.Persistence("query campaigns", err)
	}
	if len(campaigns) == 0 {
		return []CampaignReport{}, nil
	}
	sort.Slice(campaigns, func(i, j int) bool {
		if campaigns[i].Investment != campaigns[j].Investment {
			return campaigns[i].Investment > campaigns[j].Investment
		}
		return campaigns[i].ID < campaigns[j].ID
	})
	if len(campaigns) > limit {
		campaigns = campaigns[:limit]
	}

	conversions, err := s.st.ConversionsBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, apperr.Persistence("query conversions", err)
	}

	// conversions are not linked to campaigns, so the month's revenue is
	// split evenly across the ranked campaigns
	share := len(conversions) / len(campaigns)
	var shareRevenue float64
	for _, c := range conversions[:share] {
		shareRevenue += c.Value
	}

	out := make([]CampaignReport, 0, len(campaigns))
	for _, c := range campaigns {
		roi := -1.0
		if c.Investment > 0 {
			roi = round3(shareRevenue/c.Investment - 1)
		}
		out = append(out, CampaignReport{
			ID:         c.ID,
			Name:       c.Name,
			Channel:    c.Channel,
			Investment: round2(c.Investment),
			Revenue:    round2(shareRevenue),
			Sales:      share,
			ROI:        roi,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ROI != out[j].ROI {
			return out[i].ROI > out[j].ROI
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round3(f float64) float64 { return math.Round(f*1000) / 1000 }
