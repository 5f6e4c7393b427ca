package models

import "time"

// Session is one visitor touchpoint recorded by the tracking snippet.
// Immutable after creation.
type Session struct {
	SessionID   string    `json:"session_id"`
	CompanyID   string    `json:"company_id"`
	UTMSource   string    `json:"utm_source,omitempty"`
	UTMMedium   string    `json:"utm_medium,omitempty"`
	UTMCampaign string    `json:"utm_campaign,omitempty"`
	GCLID       string    `json:"gclid,omitempty"`
	FBCLID      string    `json:"fbclid,omitempty"`
	Referrer    string    `json:"referrer,omitempty"`
	IP          string    `json:"ip"`
	DeviceType  string    `json:"device_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Conversion is a sale/lead reported by an external platform webhook.
// SessionID is a weak reference: best-effort attribution, may stay nil.
type Conversion struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	SessionID   *string   `json:"session_id"`
	Value       float64   `json:"value"`
	Product     string    `json:"product"`
	Source      string    `json:"source"`
	ConvertedAt time.Time `json:"converted_at"`
}

// Campaign holds the declared ad spend for a period; informational,
// only read by the aggregation queries.
type Campaign struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	Channel    string    `json:"channel"`
	Investment float64   `json:"investment"`
	Period     time.Time `json:"period"`
}
