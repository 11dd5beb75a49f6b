package response

import (
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
)

type PaymentResponse struct {
	PaymentID string          `json:"payment_id"`
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// RegisterPaymentResponse is returned by the register endpoint; InvoicePaid
// tells the caller whether this payment settled the invoice in full.
type RegisterPaymentResponse struct {
	PaymentResponse
	InvoicePaid bool `json:"invoice_paid"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.ID,
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Method:    p.Method,
		Amount:    p.Amount,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func FromRegisteredPayment(p entities.Payment, invoicePaid bool) RegisterPaymentResponse {
	return RegisterPaymentResponse{
		PaymentResponse: FromPayment(p),
		InvoicePaid:     invoicePaid,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
