package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderID          = errors.New("invalid order id")
	ErrInvalidOrderInput       = errors.New("invalid order input")
	ErrInvalidOrderStatus      = errors.New("order not in a valid status for this transition")
	ErrOrderActionNotAllowed   = errors.New("role cannot perform this order action")
	ErrAssetNotAvailable       = errors.New("asset not available")
	ErrReservationFailed       = errors.New("asset reservation failed")
	ErrQuoteExpired            = errors.New("quote expired")
	ErrQuoteAlreadyConverted   = errors.New("quote already converted")
	ErrAvailabilityUnavailable = errors.New("availability source unavailable")
)

// IOrderUseCase is the order creation / conversion orchestrator plus the
// order's own status lifecycle.
//
// Both entry points run the same backbone:
//  1. resolve the priced configuration (fresh fetch on the direct path, the
//     quote's embedded snapshot on the quote path — never re-fetched)
//  2. validate it (direct path) or check quote status/expiry (quote path)
//  3. check availability at conversion time — never cached from quoting time
//  4. reserve the asset against a freshly generated order id
//  5. persist the order as reserved
//  6. quote path only: flip the quote to converted, as the last write
//  7. emit fire-and-forget notifications
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, companyID, customerRef, assetID, configID string) (entities.Order, error)
	ConvertQuote(ctx context.Context, quoteID, companyID string) (entities.Order, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	ConfirmOrder(ctx context.Context, orderID string, role entities.Role) (entities.Order, error)
	MarkShipped(ctx context.Context, orderID string) (entities.Order, error)
	MarkDelivered(ctx context.Context, orderID string) (entities.Order, error)
	InvoiceableTotal(ctx context.Context, orderID string) (decimal.Decimal, error)
}

type OrderUseCase struct {
	repo         interfaces.IOrderRepository
	quoteRepo    interfaces.IQuoteRepository
	optionRepo   interfaces.IOrderOptionRepository
	pricing      interfaces.IPricingSource
	availability interfaces.IAvailabilitySource
	notifier     interfaces.INotifier
}

var _ IOrderUseCase = (*OrderUseCase)(nil)
var _ interfaces.IOrderTotaler = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	quoteRepo interfaces.IQuoteRepository,
	optionRepo interfaces.IOrderOptionRepository,
	pricing interfaces.IPricingSource,
	availability interfaces.IAvailabilitySource,
	notifier interfaces.INotifier,
) *OrderUseCase {
	return &OrderUseCase{
		repo:         repo,
		quoteRepo:    quoteRepo,
		optionRepo:   optionRepo,
		pricing:      pricing,
		availability: availability,
		notifier:     notifier,
	}
}

// CreateOrder is the direct path: the priced configuration is fetched fresh
// and validated, then the shared reserve-and-persist sequence runs.
func (u *OrderUseCase) CreateOrder(ctx context.Context, companyID, customerRef, assetID, configID string) (entities.Order, error) {
	companyID = strings.TrimSpace(companyID)
	customerRef = strings.TrimSpace(customerRef)
	assetID = strings.TrimSpace(assetID)
	configID = strings.TrimSpace(configID)
	if companyID == "" || assetID == "" || configID == "" {
		return entities.Order{}, ErrInvalidOrderInput
	}

	log.Printf("[order][usecase] create start company_id=%s asset_id=%s config_id=%s", companyID, assetID, configID)
	cfg, err := u.pricing.GetConfiguration(ctx, configID)
	if err != nil {
		log.Printf("[order][usecase] pricing fetch failed config_id=%s err=%v", configID, err)
		return entities.Order{}, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}
	if !cfg.Validated || cfg.AssetID != assetID {
		log.Printf("[order][usecase] configuration rejected config_id=%s validated=%t asset_id=%s", configID, cfg.Validated, cfg.AssetID)
		return entities.Order{}, ErrConfigurationNotValidated
	}

	order, err := u.reserveAndPersist(ctx, companyID, customerRef, assetID, configID, cfg.Snapshot.Clone(), cfg.LeadTimeDays)
	if err != nil {
		return entities.Order{}, err
	}

	u.notify(ctx, "order.created", map[string]any{"order_id": order.ID, "asset_id": order.AssetID})
	u.notify(ctx, "order.reserved", map[string]any{"order_id": order.ID, "reservation_id": order.ReservationID})
	return order, nil
}

// ConvertQuote is the quote path. The quote's embedded snapshot is reused
// verbatim; availability is checked now, not at quoting time. The converted
// transition is the final write so a crash beforehand leaves the quote
// untouched and the order orphaned-but-valid.
func (u *OrderUseCase) ConvertQuote(ctx context.Context, quoteID, companyID string) (entities.Order, error) {
	quoteID = strings.TrimSpace(quoteID)
	companyID = strings.TrimSpace(companyID)
	if quoteID == "" {
		return entities.Order{}, ErrInvalidQuoteID
	}

	log.Printf("[order][usecase] convert start quote_id=%s company_id=%s", quoteID, companyID)
	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Order{}, err
	}
	if q.ID == "" {
		return entities.Order{}, ErrQuoteNotFound
	}
	if q.CompanyID != companyID {
		log.Printf("[order][usecase] convert denied quote_id=%s company_id=%s", quoteID, companyID)
		return entities.Order{}, ErrQuoteAccessDenied
	}
	if q.Status == entities.QuoteStatusConverted {
		return entities.Order{}, alreadyConvertedError(q)
	}
	now := time.Now().UTC()
	if q.Status == entities.QuoteStatusExpired || q.ExpiredAt(now) {
		// The expired transition is a correct terminal state, not part of the
		// failure: persist it before signaling.
		if q.Status == entities.QuoteStatusActive {
			if _, expErr := u.quoteRepo.MarkExpired(ctx, quoteID); expErr != nil {
				log.Printf("[order][usecase] persist expired failed quote_id=%s err=%v", quoteID, expErr)
			}
		}
		log.Printf("[order][usecase] convert rejected quote_id=%s reason=expired expires_at=%s", quoteID, q.ExpiresAt.Format(time.RFC3339))
		return entities.Order{}, fmt.Errorf("%w: quote %s", ErrQuoteExpired, quoteID)
	}

	order, err := u.reserveAndPersist(ctx, q.CompanyID, q.CustomerRef, q.AssetID, q.ConfigID, q.Snapshot.Clone(), q.LeadTimeDays)
	if err != nil {
		return entities.Order{}, err
	}

	converted, err := u.quoteRepo.MarkConverted(ctx, quoteID, order.ID)
	if err != nil {
		log.Printf("[order][usecase] mark converted failed quote_id=%s order_id=%s err=%v", quoteID, order.ID, err)
		return entities.Order{}, err
	}
	if converted.ID == "" {
		// Lost the conversion race: another call already flipped the quote.
		// The order persisted above must not survive as a billable duplicate.
		if _, failErr := u.repo.TransitionStatus(ctx, order.ID, entities.OrderStatusReserved, entities.OrderStatusFailed); failErr != nil {
			log.Printf("[order][usecase] mark loser order failed order_id=%s err=%v", order.ID, failErr)
		}
		fresh, readErr := u.quoteRepo.GetByID(ctx, quoteID)
		if readErr == nil && fresh.ID != "" && fresh.Status == entities.QuoteStatusConverted {
			return entities.Order{}, alreadyConvertedError(fresh)
		}
		return entities.Order{}, fmt.Errorf("%w: quote %s", ErrQuoteAlreadyConverted, quoteID)
	}

	log.Printf("[order][usecase] convert success quote_id=%s order_id=%s reservation_id=%s", quoteID, order.ID, order.ReservationID)
	u.notify(ctx, "order.created", map[string]any{"order_id": order.ID, "quote_id": quoteID})
	u.notify(ctx, "order.reserved", map[string]any{"order_id": order.ID, "reservation_id": order.ReservationID})
	u.notify(ctx, "quote.converted", map[string]any{"quote_id": quoteID, "order_id": order.ID})
	return order, nil
}

// reserveAndPersist runs steps 3-5 of the backbone: availability check,
// reservation against a fresh order id, then the order write. A reservation
// failure persists nothing.
func (u *OrderUseCase) reserveAndPersist(ctx context.Context, companyID, customerRef, assetID, configID string, snapshot entities.PricingSnapshot, leadTimeDays int) (entities.Order, error) {
	available, err := u.availability.CheckAvailability(ctx, assetID)
	if err != nil {
		log.Printf("[order][usecase] availability check failed asset_id=%s err=%v", assetID, err)
		return entities.Order{}, fmt.Errorf("%w: %v", ErrAvailabilityUnavailable, err)
	}
	if !available {
		log.Printf("[order][usecase] asset not available asset_id=%s", assetID)
		return entities.Order{}, fmt.Errorf("%w: asset %s", ErrAssetNotAvailable, assetID)
	}

	orderID := uuid.NewString()
	reservationID, err := u.availability.ReserveAsset(ctx, assetID, orderID)
	if err != nil {
		log.Printf("[order][usecase] reservation failed asset_id=%s order_id=%s err=%v", assetID, orderID, err)
		return entities.Order{}, fmt.Errorf("%w: %v", ErrReservationFailed, err)
	}

	order := entities.Order{
		ID:            orderID,
		CompanyID:     companyID,
		AssetID:       assetID,
		ConfigID:      configID,
		CustomerRef:   customerRef,
		Snapshot:      snapshot,
		LeadTimeDays:  leadTimeDays,
		Status:        entities.OrderStatusReserved,
		ReservationID: reservationID,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, order)
	if err != nil {
		log.Printf("[order][usecase] persist failed order_id=%s err=%v", orderID, err)
		return entities.Order{}, err
	}
	log.Printf("[order][usecase] persisted order_id=%s status=%s reservation_id=%s total=%s", created.ID, created.Status, created.ReservationID, created.Snapshot.GrandTotal)
	return created, nil
}

func (u *OrderUseCase) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) ConfirmOrder(ctx context.Context, orderID string, role entities.Role) (entities.Order, error) {
	if !role.CanConfirmOrder() {
		return entities.Order{}, ErrOrderActionNotAllowed
	}
	return u.transition(ctx, orderID, entities.OrderStatusReserved, entities.OrderStatusConfirmed)
}

func (u *OrderUseCase) MarkShipped(ctx context.Context, orderID string) (entities.Order, error) {
	o, err := u.transition(ctx, orderID, entities.OrderStatusConfirmed, entities.OrderStatusShipped)
	if err != nil {
		return entities.Order{}, err
	}
	u.notify(ctx, "order.shipped", map[string]any{"order_id": o.ID})
	return o, nil
}

func (u *OrderUseCase) MarkDelivered(ctx context.Context, orderID string) (entities.Order, error) {
	return u.transition(ctx, orderID, entities.OrderStatusShipped, entities.OrderStatusDelivered)
}

func (u *OrderUseCase) transition(ctx context.Context, orderID string, from, to entities.OrderStatus) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if o.Status != from {
		return entities.Order{}, fmt.Errorf("%w: %s is %s, want %s", ErrInvalidOrderStatus, orderID, o.Status, from)
	}

	updated, err := u.repo.TransitionStatus(ctx, orderID, from, to)
	if err != nil {
		log.Printf("[order][usecase] transition failed order_id=%s from=%s to=%s err=%v", orderID, from, to, err)
		return entities.Order{}, err
	}
	if updated.ID == "" {
		// Raced with another transition between the read and the write.
		return entities.Order{}, fmt.Errorf("%w: %s left %s concurrently", ErrInvalidOrderStatus, orderID, from)
	}
	log.Printf("[order][usecase] transition success order_id=%s from=%s to=%s", orderID, from, to)
	return updated, nil
}

// InvoiceableTotal is the single place an order total is computed: the frozen
// snapshot total plus the frozen prices of attached options. The invoice
// engine copies the result verbatim.
func (u *OrderUseCase) InvoiceableTotal(ctx context.Context, orderID string) (decimal.Decimal, error) {
	o, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	opts, err := u.optionRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	total := o.Snapshot.GrandTotal
	for _, opt := range opts {
		total = total.Add(opt.UnitPrice)
	}
	return total, nil
}

func (u *OrderUseCase) notify(ctx context.Context, event string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Publish(ctx, event, payload); err != nil {
		log.Printf("[order][usecase] notify failed event=%s err=%v", event, err)
	}
}

func alreadyConvertedError(q entities.Quote) error {
	if q.ConvertedOrderID != nil {
		return fmt.Errorf("%w: quote %s converted to order %s", ErrQuoteAlreadyConverted, q.ID, *q.ConvertedOrderID)
	}
	return fmt.Errorf("%w: quote %s", ErrQuoteAlreadyConverted, q.ID)
}
