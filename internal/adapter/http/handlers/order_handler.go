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

var errInvalidOrderPayload = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)

// OrderHandler handles HTTP requests for orders and their attached options.

type OrderHandler struct {
	usecase       usecase.IOrderUseCase
	optionUsecase usecase.IOptionUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase, optionUC usecase.IOptionUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc, optionUsecase: optionUC}
}

// CreateOrder places an order directly from a validated configuration, without
// a prior quote.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	companyID, ok := requireCompanyID(c)
	if !ok {
		return
	}

	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), companyID, payload.CustomerRef, payload.AssetID, payload.ConfigID)
	if err != nil {
		log.Printf("[order][handler] create failed company_id=%s err=%v", companyID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOrder(order))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.usecase.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// ConfirmOrder is back-office only: reserved -> confirmed.
func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.usecase.ConfirmOrder(c.Request.Context(), orderID, callerRole(c))
	if err != nil {
		log.Printf("[order][handler] confirm failed order_id=%s err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

func (h *OrderHandler) MarkShipped(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.usecase.MarkShipped(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[order][handler] ship failed order_id=%s err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.usecase.MarkDelivered(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[order][handler] deliver failed order_id=%s err=%v", orderID, err)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// AddOptions attaches premium catalog options to an order, all-or-nothing.
func (h *OrderHandler) AddOptions(c *gin.Context) {
	orderID := c.Param("order_id")

	var payload request.AddOptionsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	result, err := h.optionUsecase.AddOptions(c.Request.Context(), orderID, payload.OptionIDs)
	if err != nil {
		log.Printf("[order][handler] add options failed order_id=%s err=%v", orderID, err)
		appErr := mapOptionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromOptionAttachment(orderID, result))
}

func (h *OrderHandler) ListOptions(c *gin.Context) {
	orderID := c.Param("order_id")

	result, err := h.optionUsecase.ListOptions(c.Request.Context(), orderID)
	if err != nil {
		appErr := mapOptionError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOptionAttachment(orderID, result))
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderInput), errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAccessDenied):
		return pkg.NewDomainErrorSimple("QUOTE_ACCESS_DENIED", "Quote belongs to another company", http.StatusForbidden)
	case errors.Is(err, usecase.ErrOrderActionNotAllowed):
		return pkg.NewDomainErrorSimple("ORDER_ACTION_NOT_ALLOWED", "Role cannot perform this order action", http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuoteAlreadyConverted):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_CONVERTED", "Quote already converted to an order", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidOrderStatus):
		return pkg.NewDomainErrorSimple("INVALID_ORDER_STATUS", "Order not in a valid status for this transition", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote has expired", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrConfigurationNotValidated):
		return pkg.NewDomainErrorSimple("CONFIGURATION_NOT_VALIDATED", "Configuration is not validated for this asset", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrAssetNotAvailable):
		return pkg.NewDomainErrorSimple("ASSET_NOT_AVAILABLE", "Asset is no longer available", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrReservationFailed):
		return pkg.NewDomainErrorSimple("RESERVATION_FAILED", "Asset reservation failed", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPricingUnavailable):
		return pkg.NewDomainErrorSimple("PRICING_UNAVAILABLE", "Pricing source unavailable", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrAvailabilityUnavailable):
		return pkg.NewDomainErrorSimple("AVAILABILITY_UNAVAILABLE", "Availability source unavailable", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapOptionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOptionInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOptionNotFound):
		return pkg.NewDomainErrorSimple("OPTION_NOT_FOUND", "Option not found in catalog", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOptionAlreadyAdded):
		return pkg.NewDomainErrorSimple("OPTION_ALREADY_ADDED", "Option already attached to this order", http.StatusConflict)
	case errors.Is(err, usecase.ErrOptionNotActive):
		return pkg.NewDomainErrorSimple("OPTION_NOT_ACTIVE", "Option is deactivated", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrOrderAlreadyShipped):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_SHIPPED", "Options cannot be added after shipping", http.StatusUnprocessableEntity)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
