package response

import (
	"time"

	"github.com/shopspring/decimal"

	"refurbmarket/internal/domain/entities"
)

type InvoiceResponse struct {
	InvoiceID   string          `json:"invoice_id"`
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	CompanyID   string          `json:"company_id"`
	Number      string          `json:"number"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Status      string          `json:"status"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	DueAt       *time.Time      `json:"due_at,omitempty"`
	DocumentRef string          `json:"document_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.ID,
		ID:          inv.ID,
		OrderID:     inv.OrderID,
		CompanyID:   inv.CompanyID,
		Number:      inv.Number,
		AmountTotal: inv.AmountTotal,
		AmountPaid:  inv.AmountPaid,
		Status:      string(inv.Status),
		IssuedAt:    inv.IssuedAt,
		DueAt:       inv.DueAt,
		DocumentRef: inv.DocumentRef,
		CreatedAt:   inv.CreatedAt,
	}
}
