package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/metricaclick/attribution-go/internal/models"
)

// MemoryStore keeps everything in process memory. Used by tests and by
// STORE_DRIVER=memory local runs; no durability.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    []models.Session
	conversions []models.Conversion
	campaigns   []models.Campaign
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertSession(ctx context.Context, sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sess)
	return nil
}

func (s *MemoryStore) InsertConversion(ctx context.Context, c models.Conversion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions = append(s.conversions, c)
	return nil
}

func (s *MemoryStore) InsertCampaign(ctx context.Context, c models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, c)
	return nil
}

func (s *MemoryStore) MatchSession(ctx context.Context, companyID string, since time.Time, f SessionFilter) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Session
	for _, sess := range s.sessions {
		if sess.CompanyID != companyID || sess.CreatedAt.Before(since) {
			continue
		}
		switch {
		case f.UTMSource != "":
			if sess.UTMSource != f.UTMSource {
				continue
			}
		case f.UTMCampaign != "":
			if sess.UTMCampaign != f.UTMCampaign {
				continue
			}
		default:
			if strings.TrimSpace(sess.UTMSource) == "" {
				continue
			}
		}
		out = append(out, sess)
	}
	if len(out) == 0 {
		return nil, nil
	}
	// más reciente primero
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	match := out[0]
	return &match, nil
}

func (s *MemoryStore) SessionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Session
	for _, sess := range s.sessions {
		if sess.CompanyID == companyID && inRange(sess.CreatedAt, from, to) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *MemoryStore) CampaignsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Campaign
	for _, c := range s.campaigns {
		if c.CompanyID == companyID && inRange(c.Period, from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) ConversionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Conversion
	for _, c := range s.conversions {
		if c.CompanyID == companyID && inRange(c.ConvertedAt, from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
