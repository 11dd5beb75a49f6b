package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the order lifecycle.
//
// An order is persisted only after its asset has been reserved, so reserved is
// the initial persisted status. Failed marks the loser of a conversion race;
// such orders are never billed.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusReserved  OrderStatus = "reserved"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order is a placed purchase with a reserved physical unit and a frozen total.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The embedded snapshot is copied from the quote (or fetched fresh on the
// direct path) at creation and never changes afterwards, regardless of later
// option attachments.
type Order struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	AssetID       string          `json:"asset_id"`
	ConfigID      string          `json:"config_id"`
	CustomerRef   string          `json:"customer_ref"`
	Snapshot      PricingSnapshot `json:"snapshot"`
	LeadTimeDays  int             `json:"lead_time_days"`
	Status        OrderStatus     `json:"status"`
	ReservationID string          `json:"reservation_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HasShipped reports whether the order reached a state terminal for option
// changes.
func (o Order) HasShipped() bool {
	return o.Status == OrderStatusShipped || o.Status == OrderStatusDelivered
}

// OrderOption is a catalog add-on attached to an order. The unit price (and
// label) are frozen from the catalog at attach time; later catalog changes
// never affect an attached option.
//
// Storage model (DynamoDB):
//   - PK: id (order_id "#" option_id, which also rejects duplicates)
//   - GSI1 (order_id-index): order_id
type OrderOption struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	OptionID   string          `json:"option_id"`
	Label      string          `json:"label"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	AttachedAt time.Time       `json:"attached_at"`
}
