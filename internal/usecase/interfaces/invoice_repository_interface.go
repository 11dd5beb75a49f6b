package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// The invoice row is keyed by order id (one invoice per order); update
// methods therefore take the order id. Guarded writes follow the empty-ID
// convention:
//   - Create fails the guard when an invoice already exists for the order
//   - MarkIssued fails it unless the invoice is still draft
//   - RegisterPaymentAmount is a compare-and-set on the paid accumulator; a
//     failed guard means a concurrent payment moved it first
//   - MarkPaid fails it unless the invoice is issued
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Invoice, error)
	NextInvoiceNumber(ctx context.Context) (int64, error)
	MarkIssued(ctx context.Context, orderID string, issuedAt, dueAt time.Time, documentRef string) (entities.Invoice, error)
	RegisterPaymentAmount(ctx context.Context, orderID string, expectedPaid, newPaid decimal.Decimal, markPaid bool) (entities.Invoice, error)
	MarkPaid(ctx context.Context, orderID string) (entities.Invoice, error)
}
