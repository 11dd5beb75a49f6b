package interfaces

import (
	"context"

	"refurbmarket/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment. Payments are
// append-only; there is no update path.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}
