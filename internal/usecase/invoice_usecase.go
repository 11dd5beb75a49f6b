package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvalidInvoiceID      = errors.New("invalid invoice id")
	ErrInvoiceAlreadyExists  = errors.New("invoice already exists for this order")
	ErrOrderNotEligible      = errors.New("order not eligible for invoicing")
	ErrInvalidInvoiceStatus  = errors.New("invoice not in a valid status for this operation")
	ErrDocumentRenderFailed  = errors.New("document renderer failed")
	ErrInvoiceNumberExhausted = errors.New("invoice number sequence unavailable")
)

// IInvoiceUseCase manages the invoice lifecycle draft -> issued -> paid.
//
// The amount is copied verbatim from the order total handed over by the order
// totaler; no arithmetic happens here. Issuance renders the document first
// and persists after, so a render failure leaves the invoice draft and the
// call retryable.
type IInvoiceUseCase interface {
	CreateFromOrder(ctx context.Context, orderID string) (entities.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
	Issue(ctx context.Context, invoiceID string) (entities.Invoice, error)
	CheckAndMarkPaid(ctx context.Context, invoiceID string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo      interfaces.IInvoiceRepository
	orderRepo interfaces.IOrderRepository
	totaler   interfaces.IOrderTotaler
	renderer  interfaces.IDocumentRenderer
	notifier  interfaces.INotifier
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	orderRepo interfaces.IOrderRepository,
	totaler interfaces.IOrderTotaler,
	renderer interfaces.IDocumentRenderer,
	notifier interfaces.INotifier,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, orderRepo: orderRepo, totaler: totaler, renderer: renderer, notifier: notifier}
}

func (u *InvoiceUseCase) CreateFromOrder(ctx context.Context, orderID string) (entities.Invoice, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Invoice{}, ErrInvalidOrderID
	}

	log.Printf("[invoice][usecase] create start order_id=%s", orderID)
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if order.ID == "" {
		return entities.Invoice{}, ErrOrderNotFound
	}
	if order.Status != entities.OrderStatusConfirmed {
		log.Printf("[invoice][usecase] order not eligible order_id=%s status=%s", orderID, order.Status)
		return entities.Invoice{}, fmt.Errorf("%w: order %s is %s", ErrOrderNotEligible, orderID, order.Status)
	}

	total, err := u.totaler.InvoiceableTotal(ctx, orderID)
	if err != nil {
		return entities.Invoice{}, err
	}

	seq, err := u.repo.NextInvoiceNumber(ctx)
	if err != nil {
		log.Printf("[invoice][usecase] number sequence failed order_id=%s err=%v", orderID, err)
		return entities.Invoice{}, fmt.Errorf("%w: %v", ErrInvoiceNumberExhausted, err)
	}

	inv := entities.Invoice{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		CompanyID:   order.CompanyID,
		Number:      fmt.Sprintf("INV-%06d", seq),
		AmountTotal: total,
		Status:      entities.InvoiceStatusDraft,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		log.Printf("[invoice][usecase] persist failed order_id=%s err=%v", orderID, err)
		return entities.Invoice{}, err
	}
	if created.ID == "" {
		log.Printf("[invoice][usecase] duplicate invoice order_id=%s", orderID)
		return entities.Invoice{}, fmt.Errorf("%w: order %s", ErrInvoiceAlreadyExists, orderID)
	}
	log.Printf("[invoice][usecase] create success invoice_id=%s number=%s amount=%s", created.ID, created.Number, created.AmountTotal)
	return created, nil
}

func (u *InvoiceUseCase) GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) Issue(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	inv, err := u.GetInvoice(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status != entities.InvoiceStatusDraft {
		return entities.Invoice{}, fmt.Errorf("%w: invoice %s is %s", ErrInvalidInvoiceStatus, inv.ID, inv.Status)
	}

	log.Printf("[invoice][usecase] issue start invoice_id=%s number=%s", inv.ID, inv.Number)
	docRef, err := u.renderer.RenderInvoice(ctx, inv)
	if err != nil {
		// Invoice stays draft; the caller may retry issuance.
		log.Printf("[invoice][usecase] render failed invoice_id=%s err=%v", inv.ID, err)
		return entities.Invoice{}, fmt.Errorf("%w: %v", ErrDocumentRenderFailed, err)
	}

	issuedAt := time.Now().UTC()
	dueAt := issuedAt.AddDate(0, 0, entities.InvoicePaymentTermDays)
	updated, err := u.repo.MarkIssued(ctx, inv.OrderID, issuedAt, dueAt, docRef)
	if err != nil {
		log.Printf("[invoice][usecase] issue persist failed invoice_id=%s err=%v", inv.ID, err)
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, fmt.Errorf("%w: invoice %s left draft concurrently", ErrInvalidInvoiceStatus, inv.ID)
	}
	log.Printf("[invoice][usecase] issue success invoice_id=%s document_ref=%s due_at=%s", updated.ID, updated.DocumentRef, dueAt.Format(time.RFC3339))
	u.notifyEvent(ctx, "invoice.issued", map[string]any{"invoice_id": updated.ID, "number": updated.Number})
	return updated, nil
}

// CheckAndMarkPaid transitions an issued invoice to paid once the paid
// accumulator covers the total. Idempotent on already-paid invoices.
func (u *InvoiceUseCase) CheckAndMarkPaid(ctx context.Context, invoiceID string) (entities.Invoice, error) {
	inv, err := u.GetInvoice(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return inv, nil
	}
	if inv.Status != entities.InvoiceStatusIssued {
		return entities.Invoice{}, fmt.Errorf("%w: invoice %s is %s", ErrInvalidInvoiceStatus, inv.ID, inv.Status)
	}
	if inv.AmountPaid.LessThan(inv.AmountTotal) {
		return inv, nil
	}

	updated, err := u.repo.MarkPaid(ctx, inv.OrderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		// Already flipped by a concurrent settlement; idempotent outcome.
		return u.GetInvoice(ctx, invoiceID)
	}
	log.Printf("[invoice][usecase] settled invoice_id=%s number=%s", updated.ID, updated.Number)
	u.notifyEvent(ctx, "invoice.paid", map[string]any{"invoice_id": updated.ID, "number": updated.Number})
	return updated, nil
}

func (u *InvoiceUseCase) notifyEvent(ctx context.Context, event string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Publish(ctx, event, payload); err != nil {
		log.Printf("[invoice][usecase] notify failed event=%s err=%v", event, err)
	}
}
