package request

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid payment amount")

// RegisterPaymentRequest records a back-office settlement. The amount travels
// as a string and is parsed into an exact decimal; a float field would lose
// precision before the usecase ever saw the value.
type RegisterPaymentRequest struct {
	Method string `json:"method" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

func (r RegisterPaymentRequest) ResolveAmount() (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.Amount)
	if raw == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}
