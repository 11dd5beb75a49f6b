package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"refurbmarket/internal/domain/entities"
	mock_interfaces "refurbmarket/internal/usecase/interfaces/mocks"
)

type invoiceMocks struct {
	repo      *mock_interfaces.MockIInvoiceRepository
	orderRepo *mock_interfaces.MockIOrderRepository
	totaler   *mock_interfaces.MockIOrderTotaler
	renderer  *mock_interfaces.MockIDocumentRenderer
	notifier  *mock_interfaces.MockINotifier
}

func newInvoiceUseCaseForTest(ctrl *gomock.Controller) (*InvoiceUseCase, invoiceMocks) {
	m := invoiceMocks{
		repo:      mock_interfaces.NewMockIInvoiceRepository(ctrl),
		orderRepo: mock_interfaces.NewMockIOrderRepository(ctrl),
		totaler:   mock_interfaces.NewMockIOrderTotaler(ctrl),
		renderer:  mock_interfaces.NewMockIDocumentRenderer(ctrl),
		notifier:  mock_interfaces.NewMockINotifier(ctrl),
	}
	m.notifier.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return NewInvoiceUseCase(m.repo, m.orderRepo, m.totaler, m.renderer, m.notifier), m
}

func TestInvoiceUseCase_CreateFromOrder(t *testing.T) {
	t.Run("invalid order id", func(t *testing.T) {
		uc := NewInvoiceUseCase(nil, nil, nil, nil, nil)
		_, err := uc.CreateFromOrder(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		m.orderRepo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{}, nil)

		_, err := uc.CreateFromOrder(context.Background(), "o-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("only confirmed orders are invoiceable", func(t *testing.T) {
		for _, status := range []entities.OrderStatus{
			entities.OrderStatusReserved,
			entities.OrderStatusShipped,
			entities.OrderStatusDelivered,
			entities.OrderStatusFailed,
		} {
			ctrl := gomock.NewController(t)
			uc, m := newInvoiceUseCaseForTest(ctrl)
			m.orderRepo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: status}, nil)

			_, err := uc.CreateFromOrder(context.Background(), "o-1")
			if !errors.Is(err, ErrOrderNotEligible) {
				t.Fatalf("status %s: expected ErrOrderNotEligible, got %v", status, err)
			}
			ctrl.Finish()
		}
	})

	t.Run("copies the computed total verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)

		total := decimal.RequireFromString("1385.30")
		m.orderRepo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", CompanyID: "comp-1", Status: entities.OrderStatusConfirmed}, nil)
		m.totaler.EXPECT().InvoiceableTotal(gomock.Any(), "o-1").Return(total, nil)
		m.repo.EXPECT().NextInvoiceNumber(gomock.Any()).Return(int64(42), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Invoice{})).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				if !inv.AmountTotal.Equal(total) {
					t.Fatalf("expected amount %s, got %s", total, inv.AmountTotal)
				}
				if inv.Number != "INV-000042" {
					t.Fatalf("expected sequential number, got %s", inv.Number)
				}
				if inv.Status != entities.InvoiceStatusDraft {
					t.Fatalf("expected draft, got %s", inv.Status)
				}
				if inv.CompanyID != "comp-1" || inv.OrderID != "o-1" {
					t.Fatalf("unexpected invoice: %+v", inv)
				}
				return inv, nil
			},
		)

		inv, err := uc.CreateFromOrder(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.ID == "" {
			t.Fatalf("expected generated invoice id")
		}
	})

	t.Run("duplicate invoice for the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)

		m.orderRepo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: entities.OrderStatusConfirmed}, nil)
		m.totaler.EXPECT().InvoiceableTotal(gomock.Any(), "o-1").Return(decimal.RequireFromString("1215.40"), nil)
		m.repo.EXPECT().NextInvoiceNumber(gomock.Any()).Return(int64(43), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, nil)

		_, err := uc.CreateFromOrder(context.Background(), "o-1")
		if !errors.Is(err, ErrInvoiceAlreadyExists) {
			t.Fatalf("expected ErrInvoiceAlreadyExists, got %v", err)
		}
	})

	t.Run("number sequence failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)

		m.orderRepo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: entities.OrderStatusConfirmed}, nil)
		m.totaler.EXPECT().InvoiceableTotal(gomock.Any(), "o-1").Return(decimal.RequireFromString("1215.40"), nil)
		m.repo.EXPECT().NextInvoiceNumber(gomock.Any()).Return(int64(0), errors.New("counter unavailable"))

		_, err := uc.CreateFromOrder(context.Background(), "o-1")
		if !errors.Is(err, ErrInvoiceNumberExhausted) {
			t.Fatalf("expected ErrInvoiceNumberExhausted, got %v", err)
		}
	})
}

func TestInvoiceUseCase_Issue(t *testing.T) {
	draft := entities.Invoice{
		ID:          "inv-1",
		OrderID:     "o-1",
		Number:      "INV-000042",
		AmountTotal: decimal.RequireFromString("1385.30"),
		Status:      entities.InvoiceStatusDraft,
	}

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{}, nil)

		_, err := uc.Issue(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("already issued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		issued := draft
		issued.Status = entities.InvoiceStatusIssued
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(issued, nil)

		_, err := uc.Issue(context.Background(), "inv-1")
		if !errors.Is(err, ErrInvalidInvoiceStatus) {
			t.Fatalf("expected ErrInvalidInvoiceStatus, got %v", err)
		}
	})

	t.Run("render failure leaves the invoice draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(draft, nil)
		m.renderer.EXPECT().RenderInvoice(gomock.Any(), draft).Return("", errors.New("renderer down"))
		// No MarkIssued call: nothing is persisted on a render failure.

		_, err := uc.Issue(context.Background(), "inv-1")
		if !errors.Is(err, ErrDocumentRenderFailed) {
			t.Fatalf("expected ErrDocumentRenderFailed, got %v", err)
		}
	})

	t.Run("success stamps issue and due dates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(draft, nil)
		m.renderer.EXPECT().RenderInvoice(gomock.Any(), draft).Return("doc-ref-7", nil)
		m.repo.EXPECT().MarkIssued(gomock.Any(), "o-1", gomock.Any(), gomock.Any(), "doc-ref-7").DoAndReturn(
			func(_ context.Context, orderID string, issuedAt, dueAt time.Time, docRef string) (entities.Invoice, error) {
				days := dueAt.Sub(issuedAt).Hours() / 24
				if days < 29.9 || days > 30.1 {
					t.Fatalf("expected 30 day payment term, got %.2f days", days)
				}
				out := draft
				out.Status = entities.InvoiceStatusIssued
				out.IssuedAt = &issuedAt
				out.DueAt = &dueAt
				out.DocumentRef = docRef
				return out, nil
			},
		)

		inv, err := uc.Issue(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusIssued || inv.DocumentRef != "doc-ref-7" {
			t.Fatalf("unexpected invoice: %+v", inv)
		}
	})
}

func TestInvoiceUseCase_CheckAndMarkPaid(t *testing.T) {
	t.Run("already paid is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPaid}, nil)

		inv, err := uc.CheckAndMarkPaid(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusPaid {
			t.Fatalf("expected paid, got %s", inv.Status)
		}
	})

	t.Run("unsettled balance stays issued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{
			ID:          "inv-1",
			Status:      entities.InvoiceStatusIssued,
			AmountTotal: decimal.RequireFromString("100.00"),
			AmountPaid:  decimal.RequireFromString("40.00"),
		}, nil)

		inv, err := uc.CheckAndMarkPaid(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusIssued {
			t.Fatalf("expected issued, got %s", inv.Status)
		}
	})

	t.Run("covered balance flips to paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newInvoiceUseCaseForTest(ctrl)
		m.repo.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{
			ID:          "inv-1",
			OrderID:     "o-1",
			Status:      entities.InvoiceStatusIssued,
			AmountTotal: decimal.RequireFromString("100.00"),
			AmountPaid:  decimal.RequireFromString("100.00"),
		}, nil)
		m.repo.EXPECT().MarkPaid(gomock.Any(), "o-1").Return(entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPaid}, nil)

		inv, err := uc.CheckAndMarkPaid(context.Background(), "inv-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusPaid {
			t.Fatalf("expected paid, got %s", inv.Status)
		}
	})
}
