package store

import (
	"context"
	"time"

	"github.com/metricaclick/attribution-go/internal/models"
)

// SessionFilter narrows the attribution lookup. Exactly one variant applies:
// UTMSource equality when set, else UTMCampaign equality when set, else
// "has any utm_source".
type SessionFilter struct {
	UTMSource   string
	UTMCampaign string
}

// Store is the datastore reachable through simple filtered queries.
// Concurrency safety is the implementation's concern; every call is one
// round-trip, there are no transactions spanning calls.
type Store interface {
	InsertSession(ctx context.Context, s models.Session) error
	InsertConversion(ctx context.Context, c models.Conversion) error
	InsertCampaign(ctx context.Context, c models.Campaign) error

	// MatchSession returns the most recent session of the company created at or
	// after since that passes the filter, or nil when none matches. Single
	// ordered limit-1 query; never crosses company boundaries.
	MatchSession(ctx context.Context, companyID string, since time.Time, f SessionFilter) (*models.Session, error)

	SessionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Session, error)
	CampaignsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Campaign, error)
	ConversionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Conversion, error)
}
