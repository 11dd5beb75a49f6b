package response

import (
	"time"

	"refurbmarket/internal/domain/entities"
)

type QuoteResponse struct {
	QuoteID          string                   `json:"quote_id"`
	ID               string                   `json:"id"`
	CompanyID        string                   `json:"company_id"`
	CustomerRef      string                   `json:"customer_ref,omitempty"`
	AssetID          string                   `json:"asset_id"`
	ConfigID         string                   `json:"config_id"`
	Snapshot         entities.PricingSnapshot `json:"snapshot"`
	LeadTimeDays     int                      `json:"lead_time_days"`
	Status           string                   `json:"status"`
	ConvertedOrderID *string                  `json:"converted_order_id,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	ExpiresAt        time.Time                `json:"expires_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:          q.ID,
		ID:               q.ID,
		CompanyID:        q.CompanyID,
		CustomerRef:      q.CustomerRef,
		AssetID:          q.AssetID,
		ConfigID:         q.ConfigID,
		Snapshot:         q.Snapshot,
		LeadTimeDays:     q.LeadTimeDays,
		Status:           string(q.Status),
		ConvertedOrderID: q.ConvertedOrderID,
		CreatedAt:        q.CreatedAt,
		ExpiresAt:        q.ExpiresAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
