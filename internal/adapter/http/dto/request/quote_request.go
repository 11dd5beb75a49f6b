package request

import "time"

// CreateQuoteRequest starts a quote from a validated CTO configuration. The
// company scope comes from the auth context, never from the body.
type CreateQuoteRequest struct {
	CustomerRef string `json:"customer_ref"`
	AssetID     string `json:"asset_id" binding:"required"`
	ConfigID    string `json:"config_id" binding:"required"`
}

// ExtendQuoteExpiryRequest moves the validity window forward (internal sales
// only).
type ExtendQuoteExpiryRequest struct {
	NewExpiry time.Time `json:"new_expiry" binding:"required"`
}
