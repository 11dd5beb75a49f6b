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
	ErrPaymentUnauthorized  = errors.New("role cannot register payments")
	ErrInvoiceNotIssued     = errors.New("invoice not issued")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidPaymentInput  = errors.New("invalid payment input")
	ErrPaymentConflict      = errors.New("concurrent payment activity on invoice")
)

// registerPaymentAttempts bounds the optimistic retry loop on the invoice's
// paid accumulator.
const registerPaymentAttempts = 3

// IPaymentUseCase records back-office settlements against issued invoices.
//
// Recording is serialized through a compare-and-set on the invoice's paid
// accumulator, so two concurrent payments can never both observe "not yet
// full" and overshoot the total. RegisterPayment also settles the invoice
// inline when the accumulated payments cover it, and reports that through the
// returned flag.
type IPaymentUseCase interface {
	RegisterPayment(ctx context.Context, invoiceID, method string, amount decimal.Decimal, role entities.Role) (entities.Payment, bool, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo        interfaces.IPaymentRepository
	invoiceRepo interfaces.IInvoiceRepository
	notifier    interfaces.INotifier
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, invoiceRepo interfaces.IInvoiceRepository, notifier interfaces.INotifier) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, invoiceRepo: invoiceRepo, notifier: notifier}
}

func (u *PaymentUseCase) RegisterPayment(ctx context.Context, invoiceID, method string, amount decimal.Decimal, role entities.Role) (entities.Payment, bool, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	method = strings.TrimSpace(method)
	if invoiceID == "" {
		return entities.Payment{}, false, ErrInvalidInvoiceID
	}
	if method == "" {
		return entities.Payment{}, false, ErrInvalidPaymentInput
	}
	if !role.CanRegisterPayment() {
		log.Printf("[payment][usecase] register denied invoice_id=%s role=%s", invoiceID, role)
		return entities.Payment{}, false, ErrPaymentUnauthorized
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return entities.Payment{}, false, fmt.Errorf("%w: amount must be positive", ErrInvalidPaymentAmount)
	}

	log.Printf("[payment][usecase] register start invoice_id=%s method=%s amount=%s", invoiceID, method, amount)

	var settled entities.Invoice
	var completed bool
	applied := false
	for attempt := 0; attempt < registerPaymentAttempts; attempt++ {
		inv, err := u.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return entities.Payment{}, false, err
		}
		if inv.ID == "" {
			return entities.Payment{}, false, ErrInvoiceNotFound
		}
		// Issued or already paid; paid invoices are tolerated for trailing
		// confirmations but their remaining balance is zero.
		if inv.Status == entities.InvoiceStatusDraft {
			return entities.Payment{}, false, fmt.Errorf("%w: invoice %s", ErrInvoiceNotIssued, inv.ID)
		}

		remaining := inv.RemainingBalance()
		if amount.GreaterThan(remaining) {
			log.Printf("[payment][usecase] overpayment rejected invoice_id=%s amount=%s remaining=%s", invoiceID, amount, remaining)
			return entities.Payment{}, false, fmt.Errorf("%w: amount %s exceeds remaining balance %s", ErrInvalidPaymentAmount, amount, remaining)
		}

		newPaid := inv.AmountPaid.Add(amount)
		completed = newPaid.GreaterThanOrEqual(inv.AmountTotal)
		updated, err := u.invoiceRepo.RegisterPaymentAmount(ctx, inv.OrderID, inv.AmountPaid, newPaid, completed)
		if err != nil {
			return entities.Payment{}, false, err
		}
		if updated.ID == "" {
			// Lost the CAS: another payment moved the accumulator first.
			// Re-read and retry against the fresh balance.
			log.Printf("[payment][usecase] accumulator raced invoice_id=%s attempt=%d", invoiceID, attempt+1)
			continue
		}
		settled = updated
		applied = true
		break
	}
	if !applied {
		return entities.Payment{}, false, fmt.Errorf("%w: invoice %s", ErrPaymentConflict, invoiceID)
	}

	p := entities.Payment{
		ID:        uuid.NewString(),
		InvoiceID: invoiceID,
		Method:    method,
		Status:    entities.PaymentStatusCompleted,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		// The accumulator already carries this amount; surface loudly so the
		// back office can reconcile the missing record.
		log.Printf("[payment][usecase] record persist failed invoice_id=%s payment_id=%s err=%v", invoiceID, p.ID, err)
		return entities.Payment{}, false, err
	}

	log.Printf("[payment][usecase] register success invoice_id=%s payment_id=%s amount=%s invoice_paid=%t", invoiceID, created.ID, created.Amount, completed)
	if completed {
		u.notifyEvent(ctx, "invoice.paid", map[string]any{"invoice_id": settled.ID, "number": settled.Number})
	}
	return created, completed, nil
}

func (u *PaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}

func (u *PaymentUseCase) notifyEvent(ctx context.Context, event string, payload map[string]any) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Publish(ctx, event, payload); err != nil {
		log.Printf("[payment][usecase] notify failed event=%s err=%v", event, err)
	}
}
