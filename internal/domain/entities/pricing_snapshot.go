package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricedComponent is one priced line inside a PricingSnapshot (a CPU, a RAM
// module, a chassis, ...).
type PricedComponent struct {
	Type      string          `json:"type"`
	Reference string          `json:"reference"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PricingSnapshot is the priced configuration captured once from the pricing
// engine.
//
// Domain notes:
//   - The marketplace never recomputes a captured price. Once a snapshot is
//     embedded in a Quote or an Order it is only ever copied verbatim.
//   - All monetary fields use decimal arithmetic so copies and comparisons
//     never drift.
type PricingSnapshot struct {
	Components []PricedComponent `json:"components"`
	LaborCost  decimal.Decimal   `json:"labor_cost"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Margin     decimal.Decimal   `json:"margin"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
	Currency   string            `json:"currency"`
	CapturedAt time.Time         `json:"captured_at"`
}

// Clone returns a deep copy of the snapshot. Embedding always goes through
// Clone so a quote and the order converted from it never share a slice.
func (s PricingSnapshot) Clone() PricingSnapshot {
	out := s
	if s.Components != nil {
		out.Components = make([]PricedComponent, len(s.Components))
		copy(out.Components, s.Components)
	}
	return out
}

// Equal reports whether two snapshots carry the same lines and totals.
func (s PricingSnapshot) Equal(o PricingSnapshot) bool {
	if len(s.Components) != len(o.Components) {
		return false
	}
	for i := range s.Components {
		a, b := s.Components[i], o.Components[i]
		if a.Type != b.Type || a.Reference != b.Reference || a.Quantity != b.Quantity {
			return false
		}
		if !a.UnitPrice.Equal(b.UnitPrice) || !a.LineTotal.Equal(b.LineTotal) {
			return false
		}
	}
	return s.LaborCost.Equal(o.LaborCost) &&
		s.Subtotal.Equal(o.Subtotal) &&
		s.Margin.Equal(o.Margin) &&
		s.GrandTotal.Equal(o.GrandTotal) &&
		s.Currency == o.Currency &&
		s.CapturedAt.Equal(o.CapturedAt)
}
