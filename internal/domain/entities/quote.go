package entities

import "time"

// QuoteStatus represents the lifecycle of a quote.
//
// Domain notes:
//   - A quote is created active with its pricing snapshot frozen.
//   - Nothing flips a quote to expired in the background: expiry is evaluated
//     lazily on read, and persisted only when a conversion attempt discovers
//     it (see the order usecase).
//   - Converted is terminal and reached exactly once.
type QuoteStatus string

const (
	QuoteStatusActive    QuoteStatus = "active"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
)

// QuoteValidityDays is the fixed validity window applied at creation.
const QuoteValidityDays = 30

// Quote is a company-scoped, time-bounded offer referencing a frozen
// PricingSnapshot, convertible at most once into an Order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (company_id-index): company_id
type Quote struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	CustomerRef      string          `json:"customer_ref"`
	AssetID          string          `json:"asset_id"`
	ConfigID         string          `json:"config_id"`
	Snapshot         PricingSnapshot `json:"snapshot"`
	LeadTimeDays     int             `json:"lead_time_days"`
	Status           QuoteStatus     `json:"status"`
	ConvertedOrderID *string         `json:"converted_order_id,omitempty"`
	AuditNotes       []string        `json:"audit_notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	ExpiresAt        time.Time       `json:"expires_at"`
}

// ExpiredAt reports whether the quote's validity window has passed at now.
// Converted quotes are terminal and never considered expired.
func (q Quote) ExpiredAt(now time.Time) bool {
	return q.Status != QuoteStatusConverted && now.After(q.ExpiresAt)
}

// EffectiveStatus is the status to report for a read at now, without
// persisting anything.
func (q Quote) EffectiveStatus(now time.Time) QuoteStatus {
	if q.Status == QuoteStatusActive && now.After(q.ExpiresAt) {
		return QuoteStatusExpired
	}
	return q.Status
}
