package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
)

// PricedConfiguration is what the pricing engine returns for a validated
// technical configuration. The embedded snapshot is consumed as-is; the core
// never asks the engine to refresh a price it already captured.
type PricedConfiguration struct {
	ConfigID     string
	AssetID      string
	Validated    bool
	LeadTimeDays int
	Snapshot     entities.PricingSnapshot
}

// IPricingSource abstracts the external pricing engine.
type IPricingSource interface {
	GetConfiguration(ctx context.Context, configID string) (PricedConfiguration, error)
}

// IAvailabilitySource abstracts the inventory service. ReserveAsset may fail
// even right after CheckAvailability returned true (race with another
// reservation); that failure propagates, it is never retried here.
type IAvailabilitySource interface {
	CheckAvailability(ctx context.Context, assetID string) (bool, error)
	ReserveAsset(ctx context.Context, assetID, orderRef string) (reservationID string, err error)
}

// CatalogOption is a premium option as listed in the catalog. Price and label
// are frozen onto the order at attach time.
type CatalogOption struct {
	ID     string
	Label  string
	Price  decimal.Decimal
	Active bool
}

// IOptionCatalog resolves catalog options. An empty-ID result with a nil
// error means the option does not exist.
type IOptionCatalog interface {
	GetOption(ctx context.Context, optionID string) (CatalogOption, error)
}

// IDocumentRenderer abstracts the invoice document renderer. A render failure
// must leave the invoice draft, so issuance renders first and persists after.
type IDocumentRenderer interface {
	RenderInvoice(ctx context.Context, inv entities.Invoice) (documentRef string, err error)
}

// INotifier publishes domain events for external consumers. Deliveries are
// fire-and-forget: callers log errors and never fail the operation on them.
type INotifier interface {
	Publish(ctx context.Context, event string, payload map[string]any) error
}

// IOrderTotaler computes the invoiceable total of an order (frozen snapshot
// total plus frozen option prices). It is the only place an order total is
// computed; the invoice engine copies the result verbatim.
type IOrderTotaler interface {
	InvoiceableTotal(ctx context.Context, orderID string) (decimal.Decimal, error)
}
