package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	request "refurbmarket/internal/adapter/http/dto/request"
	response "refurbmarket/internal/adapter/http/dto/response"
	"refurbmarket/internal/usecase"
	"refurbmarket/pkg"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler handles HTTP requests for back-office payment recording.

type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// RegisterPayment records a settlement against an issued invoice. Back-office
// roles only; the response carries whether the invoice is now paid in full.
func (h *PaymentHandler) RegisterPayment(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	log.Printf("[payment][handler] register start invoice_id=%s", invoiceID)

	var payload request.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	payment, invoicePaid, err := h.usecase.RegisterPayment(c.Request.Context(), invoiceID, payload.Method, amount, callerRole(c))
	if err != nil {
		log.Printf("[payment][handler] register failed invoice_id=%s err=%v", invoiceID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] register success invoice_id=%s payment_id=%s invoice_paid=%t", invoiceID, payment.ID, invoicePaid)

	c.JSON(http.StatusCreated, response.FromRegisteredPayment(payment, invoicePaid))
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	payments, err := h.usecase.ListByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidPaymentInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_UNAUTHORIZED", "Role cannot register payments", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentConflict):
		return pkg.NewDomainErrorSimple("PAYMENT_CONFLICT", "Concurrent payment activity on invoice", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceNotIssued):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_ISSUED", "Invoice has not been issued", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidPaymentAmount):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_AMOUNT", "Payment amount invalid or exceeds remaining balance", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
