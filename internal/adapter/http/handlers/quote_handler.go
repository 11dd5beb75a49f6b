package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	request "refurbmarket/internal/adapter/http/dto/request"
	response "refurbmarket/internal/adapter/http/dto/response"
	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase"
	"refurbmarket/internal/usecase/interfaces"
	"refurbmarket/pkg"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quotes, including conversion into an
// order. Conversion delegates to the order use case since it is an
// order-creating sequence.

type QuoteHandler struct {
	usecase      usecase.IQuoteUseCase
	orderUsecase usecase.IOrderUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, orderUC usecase.IOrderUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, orderUsecase: orderUC}
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), companyID, payload.CustomerRef, payload.AssetID, payload.ConfigID)
	if err != nil {
		log.Printf("[quote][handler] create failed company_id=%s err=%v", companyID, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	quoteID := c.Param("quote_id")

	quote, err := h.usecase.GetQuote(c.Request.Context(), quoteID, companyID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	filter, err := parseQuoteListFilter(c)
	if err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quotes, err := h.usecase.ListQuotes(c.Request.Context(), companyID, filter)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// ConvertQuote turns an active quote into a reserved order, reusing the
// quote's frozen snapshot.
func (h *QuoteHandler) ConvertQuote(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}
	quoteID := c.Param("quote_id")
	log.Printf("[quote][handler] convert start quote_id=%s company_id=%s", quoteID, companyID)

	order, err := h.orderUsecase.ConvertQuote(c.Request.Context(), quoteID, companyID)
	if err != nil {
		log.Printf("[quote][handler] convert failed quote_id=%s err=%v", quoteID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[quote][handler] convert success quote_id=%s order_id=%s", quoteID, order.ID)

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

// ExtendExpiry moves a quote's validity window forward. Sales-internal only.
func (h *QuoteHandler) ExtendExpiry(c *gin.Context) {
	quoteID := c.Param("quote_id")

	var payload request.ExtendQuoteExpiryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.ExtendExpiry(c.Request.Context(), quoteID, payload.NewExpiry, callerRole(c))
	if err != nil {
		log.Printf("[quote][handler] extend failed quote_id=%s err=%v", quoteID, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func parseQuoteListFilter(c *gin.Context) (interfaces.QuoteListFilter, error) {
	var filter interfaces.QuoteListFilter
	if raw := c.Query("status"); raw != "" {
		status := entities.QuoteStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("expiring_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return interfaces.QuoteListFilter{}, err
		}
		filter.ExpiringBefore = &t
	}
	if raw := c.Query("expiring_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return interfaces.QuoteListFilter{}, err
		}
		filter.ExpiringAfter = &t
	}
	return filter, nil
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAccessDenied):
		return pkg.NewDomainErrorSimple("QUOTE_ACCESS_DENIED", "Quote belongs to another company", http.StatusForbidden)
	case errors.Is(err, usecase.ErrExtensionNotAllowed):
		return pkg.NewDomainErrorSimple("EXTENSION_NOT_ALLOWED", "Role cannot extend quote validity", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidExtension):
		return pkg.NewDomainErrorSimple("INVALID_EXTENSION", "New expiry must be after the current expiry", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConfigurationNotValidated):
		return pkg.NewDomainErrorSimple("CONFIGURATION_NOT_VALIDATED", "Configuration is not validated for this asset", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPricingUnavailable):
		return pkg.NewDomainErrorSimple("PRICING_UNAVAILABLE", "Pricing source unavailable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
