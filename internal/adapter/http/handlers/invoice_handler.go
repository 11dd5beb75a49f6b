package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	response "refurbmarket/internal/adapter/http/dto/response"
	"refurbmarket/internal/usecase"
	"refurbmarket/pkg"
)

// InvoiceHandler handles HTTP requests for the invoice lifecycle
// draft -> issued -> paid.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// CreateInvoice drafts the single invoice for a confirmed order.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	orderID := c.Param("order_id")
	log.Printf("[invoice][handler] create start order_id=%s", orderID)

	invoice, err := h.usecase.CreateFromOrder(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[invoice][handler] create failed order_id=%s err=%v", orderID, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] create success order_id=%s invoice_id=%s number=%s", orderID, invoice.ID, invoice.Number)

	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID := c.Param("invoice_id")

	invoice, err := h.usecase.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// IssueInvoice renders the invoice document and transitions draft -> issued.
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	invoiceID := c.Param("invoice_id")
	log.Printf("[invoice][handler] issue start invoice_id=%s", invoiceID)

	invoice, err := h.usecase.Issue(c.Request.Context(), invoiceID)
	if err != nil {
		log.Printf("[invoice][handler] issue failed invoice_id=%s err=%v", invoiceID, err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyExists):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_EXISTS", "Invoice already exists for this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidInvoiceStatus):
		return pkg.NewDomainErrorSimple("INVALID_INVOICE_STATUS", "Invoice not in a valid status for this operation", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotEligible):
		return pkg.NewDomainErrorSimple("ORDER_NOT_ELIGIBLE", "Order not eligible for invoicing", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrDocumentRenderFailed):
		return pkg.NewDomainErrorSimple("DOCUMENT_RENDER_FAILED", "Invoice document rendering failed", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrInvoiceNumberExhausted):
		return pkg.NewDomainErrorSimple("INVOICE_NUMBER_UNAVAILABLE", "Invoice number sequence unavailable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
