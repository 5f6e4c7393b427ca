package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metricaclick/attribution-go/internal/models"
)

// PostgresStore persists records in Postgres through a pgx pool. One statement
// per operation; row-level access rules live in the database, not here.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Connect opens a pool and verifies connectivity.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (s *PostgresStore) InsertSession(ctx context.Context, sess models.Session) error {
	const stmt = `INSERT INTO sessions (session_id, company_id, utm_source, utm_medium, utm_campaign, gclid, fbclid, referrer, ip, device_type, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := s.pool.Exec(ctx, stmt,
		sess.SessionID,
		sess.CompanyID,
		nullIfEmpty(sess.UTMSource),
		nullIfEmpty(sess.UTMMedium),
		nullIfEmpty(sess.UTMCampaign),
		nullIfEmpty(sess.GCLID),
		nullIfEmpty(sess.FBCLID),
		nullIfEmpty(sess.Referrer),
		sess.IP,
		sess.DeviceType,
		sess.CreatedAt,
	)
	return err
}

func (s *PostgresStore) InsertConversion(ctx context.Context, c models.Conversion) error {
	const stmt = `INSERT INTO conversions (id, company_id, session_id, value, product, source, converted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := s.pool.Exec(ctx, stmt, c.ID, c.CompanyID, c.SessionID, c.Value, c.Product, c.Source, c.ConvertedAt)
	return err
}

func (s *PostgresStore) InsertCampaign(ctx context.Context, c models.Campaign) error {
	const stmt = `INSERT INTO campaigns (id, company_id, name, channel, investment, period)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := s.pool.Exec(ctx, stmt, c.ID, c.CompanyID, c.Name, c.Channel, c.Investment, c.Period)
	return err
}

func (s *PostgresStore) MatchSession(ctx context.Context, companyID string, since time.Time, f SessionFilter) (*models.Session, error) {
	query := `SELECT session_id, company_id, utm_source, utm_medium, utm_campaign, gclid, fbclid, referrer, ip, device_type, created_at
        FROM sessions WHERE company_id=$1 AND created_at>=$2 AND `
	args := []any{companyID, since}
	switch {
	case f.UTMSource != "":
		query += `utm_source=$3`
		args = append(args, f.UTMSource)
	case f.UTMCampaign != "":
		query += `utm_campaign=$3`
		args = append(args, f.UTMCampaign)
	default:
		query += `utm_source IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT 1`

	row := s.pool.QueryRow(ctx, query, args...)
	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

func (s *PostgresStore) SessionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Session, error) {
	const query = `SELECT session_id, company_id, utm_source, utm_medium, utm_campaign, gclid, fbclid, referrer, ip, device_type, created_at
        FROM sessions WHERE company_id=$1 AND created_at>=$2 AND created_at<=$3`
	rows, err := s.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CampaignsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Campaign, error) {
	const query = `SELECT id, company_id, name, channel, investment, period
        FROM campaigns WHERE company_id=$1 AND period>=$2 AND period<=$3`
	rows, err := s.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Channel, &c.Investment, &c.Period); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ConversionsBetween(ctx context.Context, companyID string, from, to time.Time) ([]models.Conversion, error) {
	const query = `SELECT id, company_id, session_id, value, product, source, converted_at
        FROM conversions WHERE company_id=$1 AND converted_at>=$2 AND converted_at<=$3`
	rows, err := s.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Conversion
	for rows.Next() {
		var c models.Conversion
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.SessionID, &c.Value, &c.Product, &c.Source, &c.ConvertedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var sess models.Session
	var source, medium, campaign, gclid, fbclid, referrer *string
	if err := row.Scan(&sess.SessionID, &sess.CompanyID, &source, &medium, &campaign, &gclid, &fbclid, &referrer, &sess.IP, &sess.DeviceType, &sess.CreatedAt); err != nil {
		return nil, err
	}
	sess.UTMSource = deref(source)
	sess.UTMMedium = deref(medium)
	sess.UTMCampaign = deref(campaign)
	sess.GCLID = deref(gclid)
	sess.FBCLID = deref(fbclid)
	sess.Referrer = deref(referrer)
	return &sess, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
