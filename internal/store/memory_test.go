package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/metricaclick/attribution-go/internal/models"
)

func seed(t *testing.T, st *MemoryStore, sessionID, companyID, utmSource, utmCampaign string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, st.InsertSession(context.Background(), models.Session{
		SessionID:   sessionID,
		CompanyID:   companyID,
		UTMSource:   utmSource,
		UTMCampaign: utmCampaign,
		CreatedAt:   createdAt,
	}))
}

func TestMatchSessionBySource(t *testing.T) {
	st := NewMemoryStore()
	now := time.Now().UTC()

	seed(t, st, "s1", "co-1", "facebook", "", now.Add(-48*time.Hour))
	seed(t, st, "s2", "co-1", "facebook", "", now.Add(-1*time.Hour))
	seed(t, st, "s3", "co-1", "google", "", now.Add(-30*time.Minute))

	got, err := st.MatchSession(context.Background(), "co-1", now.Add(-72*time.Hour), SessionFilter{UTMSource: "facebook"})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "s2", got.SessionID, "newest matching source wins")
}

func TestMatchSessionByCampaign(t *testing.T) {
	st := NewMemoryStore()
	now := time.Now().UTC()

	seed(t, st, "s1", "co-1", "", "lancamento", now.Add(-2*time.Hour))
	seed(t, st, "s2", "co-1", "", "outra", now.Add(-1*time.Hour))

	got, err := st.MatchSession(context.Background(), "co-1", now.Add(-24*time.Hour), SessionFilter{UTMCampaign: "lancamento"})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "s1", got.SessionID)
}

func TestMatchSessionAnySource(t *testing.T) {
	st := NewMemoryStore()
	now := time.Now().UTC()

	seed(t, st, "s_bare", "co-1", "", "", now.Add(-10*time.Minute))
	seed(t, st, "s_tagged", "co-1", "tiktok", "", now.Add(-20*time.Minute))

	// filtro vacío: cualquier sesión con utm_source
	got, err := st.MatchSession(context.Background(), "co-1", now.Add(-time.Hour), SessionFilter{})
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "s_tagged", got.SessionID)
}

func TestMatchSessionRespectsWindowAndCompany(t *testing.T) {
	st := NewMemoryStore()
	now := time.Now().UTC()

	seed(t, st, "s_old", "co-1", "facebook", "", now.Add(-40*24*time.Hour))
	seed(t, st, "s_foreign", "co-2", "facebook", "", now.Add(-time.Hour))

	got, err := st.MatchSession(context.Background(), "co-1", now.Add(-30*24*time.Hour), SessionFilter{UTMSource: "facebook"})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBetweenQueriesFilterByRange(t *testing.T) {
	st := NewMemoryStore()
	now := time.Now().UTC()

	require.NoError(t, st.InsertCampaign(context.Background(), models.Campaign{ID: "c1", CompanyID: "co-1", Investment: 100, Period: now}))
	require.NoError(t, st.InsertCampaign(context.Background(), models.Campaign{ID: "c2", CompanyID: "co-1", Investment: 100, Period: now.AddDate(0, -2, 0)}))
	require.NoError(t, st.InsertConversion(context.Background(), models.Conversion{ID: "v1", CompanyID: "co-1", Value: 50, ConvertedAt: now}))
	require.NoError(t, st.InsertConversion(context.Background(), models.Conversion{ID: "v2", CompanyID: "co-2", Value: 50, ConvertedAt: now}))

	camps, err := st.CampaignsBetween(context.Background(), "co-1", now.Add(-24*time.Hour), now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, camps, 1)
	require.Equal(t, "c1", camps[0].ID)

	convs, err := st.ConversionsBetween(context.Background(), "co-1", now.Add(-24*time.Hour), now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, convs, 1)
	require.Equal(t, "v1", convs[0].ID)
}
