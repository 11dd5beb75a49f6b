package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"refurbmarket/internal/adapter/http/handlers/mocks"
	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase"
)

func TestPaymentHandler_RegisterPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/invoices/:invoice_id/payments", h.RegisterPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unparseable amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/invoices/:invoice_id/payments", h.RegisterPayment)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payments", bytes.NewBufferString(`{"method":"wire_transfer","amount":"forty"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("customer role forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:invoice_id/payments", h.RegisterPayment)

		uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", "wire_transfer", gomock.Any(), entities.RoleCustomerBuyer).
			Return(entities.Payment{}, false, usecase.ErrPaymentUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payments", bytes.NewBufferString(`{"method":"wire_transfer","amount":"40.00"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderRole, "customer_buyer")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("overpayment maps to unprocessable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:invoice_id/payments", h.RegisterPayment)

		uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", "wire_transfer", gomock.Any(), entities.RoleBackOffice).
			Return(entities.Payment{}, false, usecase.ErrInvalidPaymentAmount)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payments", bytes.NewBufferString(`{"method":"wire_transfer","amount":"999.00"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderRole, "back_office")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success reports settlement flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/invoices/:invoice_id/payments", h.RegisterPayment)

		amount := decimal.RequireFromString("40.00")
		uc.EXPECT().RegisterPayment(gomock.Any(), "inv-1", "wire_transfer", gomock.Any(), entities.RoleBackOffice).DoAndReturn(
			func(_ context.Context, invoiceID, method string, got decimal.Decimal, _ entities.Role) (entities.Payment, bool, error) {
				if !got.Equal(amount) {
					t.Fatalf("expected exact decimal amount, got %s", got)
				}
				return entities.Payment{ID: "p-1", InvoiceID: invoiceID, Method: method, Amount: got, Status: entities.PaymentStatusCompleted}, true, nil
			},
		)

		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/inv-1/payments", bytes.NewBufferString(`{"method":"wire_transfer","amount":"40.00"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderRole, "back_office")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "p-1" || body["invoice_paid"] != true {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/invoices/:invoice_id/payments", h.ListPayments)

		uc.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return([]entities.Payment{
			{ID: "p-1", InvoiceID: "inv-1", Amount: decimal.RequireFromString("40.00")},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/invoices/inv-1/payments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestMapPaymentError(t *testing.T) {
	if got := mapPaymentError(usecase.ErrInvalidInvoiceID); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapPaymentError(usecase.ErrPaymentUnauthorized); got.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected 403")
	}
	if got := mapPaymentError(usecase.ErrInvoiceNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapPaymentError(usecase.ErrPaymentConflict); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapPaymentError(usecase.ErrInvoiceNotIssued); got.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422")
	}
	if got := mapPaymentError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
