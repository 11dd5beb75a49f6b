package response

import (
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase"
)

type OrderResponse struct {
	OrderID       string                   `json:"order_id"`
	ID            string                   `json:"id"`
	CompanyID     string                   `json:"company_id"`
	AssetID       string                   `json:"asset_id"`
	ConfigID      string                   `json:"config_id"`
	CustomerRef   string                   `json:"customer_ref,omitempty"`
	Snapshot      entities.PricingSnapshot `json:"snapshot"`
	LeadTimeDays  int                      `json:"lead_time_days"`
	Status        string                   `json:"status"`
	ReservationID string                   `json:"reservation_id,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.ID,
		ID:            o.ID,
		CompanyID:     o.CompanyID,
		AssetID:       o.AssetID,
		ConfigID:      o.ConfigID,
		CustomerRef:   o.CustomerRef,
		Snapshot:      o.Snapshot,
		LeadTimeDays:  o.LeadTimeDays,
		Status:        string(o.Status),
		ReservationID: o.ReservationID,
		CreatedAt:     o.CreatedAt,
	}
}

type OrderOptionResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	OptionID   string          `json:"option_id"`
	Label      string          `json:"label,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	AttachedAt time.Time       `json:"attached_at"`
}

type OrderOptionsResponse struct {
	OrderID           string                `json:"order_id"`
	Options           []OrderOptionResponse `json:"options"`
	Count             int                   `json:"count"`
	TotalOptionsPrice decimal.Decimal       `json:"total_options_price"`
}

func FromOptionAttachment(orderID string, res usecase.OptionAttachmentResult) OrderOptionsResponse {
	options := make([]OrderOptionResponse, 0, len(res.Options))
	for _, o := range res.Options {
		options = append(options, OrderOptionResponse{
			ID:         o.ID,
			OrderID:    o.OrderID,
			OptionID:   o.OptionID,
			Label:      o.Label,
			UnitPrice:  o.UnitPrice,
			AttachedAt: o.AttachedAt,
		})
	}
	return OrderOptionsResponse{
		OrderID:           orderID,
		Options:           options,
		Count:             len(options),
		TotalOptionsPrice: res.TotalOptionsPrice,
	}
}
