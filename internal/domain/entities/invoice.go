package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing document lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// InvoicePaymentTermDays is the fixed payment term applied at issuance.
const InvoicePaymentTermDays = 30

// Invoice is the billing document for a confirmed order.
//
// Storage model (DynamoDB):
//   - PK: order_id (guarantees 1 invoice per order)
//   - GSI1 (id-index): id
//
// AmountTotal is copied verbatim from the order total at creation and never
// mutated; only status, dates, the document reference and the paid
// accumulator change over the lifecycle. AmountPaid exists so concurrent
// payment recordings can be serialized with a compare-and-set on its value.
type Invoice struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	CompanyID   string          `json:"company_id"`
	Number      string          `json:"number"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Status      InvoiceStatus   `json:"status"`
	IssuedAt    *time.Time      `json:"issued_at,omitempty"`
	DueAt       *time.Time      `json:"due_at,omitempty"`
	DocumentRef string          `json:"document_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RemainingBalance is the amount still owed on the invoice.
func (i Invoice) RemainingBalance() decimal.Decimal {
	return i.AmountTotal.Sub(i.AmountPaid)
}
