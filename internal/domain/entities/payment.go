package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the recorded settlement state. Payment recording is
// back-office only and append-only; partial or failed provider states are not
// modeled.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Known payment methods. The field is free-form on the wire; these are the
// values the back office actually records.
const (
	PaymentMethodWireTransfer = "wire_transfer"
	PaymentMethodCheck        = "check"
	PaymentMethodCard         = "card"
)

// Payment is a recorded settlement against an invoice, bounded by the
// invoice's remaining balance.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (invoice_id-index): invoice_id
type Payment struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Method    string          `json:"method"`
	Status    PaymentStatus   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
