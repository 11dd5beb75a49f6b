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

type orderMocks struct {
	repo         *mock_interfaces.MockIOrderRepository
	quoteRepo    *mock_interfaces.MockIQuoteRepository
	optionRepo   *mock_interfaces.MockIOrderOptionRepository
	pricing      *mock_interfaces.MockIPricingSource
	availability *mock_interfaces.MockIAvailabilitySource
	notifier     *mock_interfaces.MockINotifier
}

func newOrderUseCaseForTest(ctrl *gomock.Controller) (*OrderUseCase, orderMocks) {
	m := orderMocks{
		repo:         mock_interfaces.NewMockIOrderRepository(ctrl),
		quoteRepo:    mock_interfaces.NewMockIQuoteRepository(ctrl),
		optionRepo:   mock_interfaces.NewMockIOrderOptionRepository(ctrl),
		pricing:      mock_interfaces.NewMockIPricingSource(ctrl),
		availability: mock_interfaces.NewMockIAvailabilitySource(ctrl),
		notifier:     mock_interfaces.NewMockINotifier(ctrl),
	}
	m.notifier.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return NewOrderUseCase(m.repo, m.quoteRepo, m.optionRepo, m.pricing, m.availability, m.notifier), m
}

func activeQuoteForTest() entities.Quote {
	now := time.Now().UTC()
	return entities.Quote{
		ID:           "q-1",
		CompanyID:    "comp-1",
		CustomerRef:  "PO-77",
		AssetID:      "asset-1",
		ConfigID:     "cfg-1",
		Snapshot:     snapshotForTest("1215.40"),
		LeadTimeDays: 12,
		Status:       entities.QuoteStatusActive,
		CreatedAt:    now.AddDate(0, 0, -5),
		ExpiresAt:    now.AddDate(0, 0, 25),
	}
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, nil, nil, nil, nil)
		_, err := uc.CreateOrder(context.Background(), "comp-1", "", "", "cfg-1")
		if !errors.Is(err, ErrInvalidOrderInput) {
			t.Fatalf("expected ErrInvalidOrderInput, got %v", err)
		}
	})

	t.Run("asset not available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(pricedConfigForTest("asset-1", "1215.40"), nil)
		m.availability.EXPECT().CheckAvailability(gomock.Any(), "asset-1").Return(false, nil)

		_, err := uc.CreateOrder(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if !errors.Is(err, ErrAssetNotAvailable) {
			t.Fatalf("expected ErrAssetNotAvailable, got %v", err)
		}
	})

	t.Run("reservation failure persists nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(pricedConfigForTest("asset-1", "1215.40"), nil)
		m.availability.EXPECT().CheckAvailability(gomock.Any(), "asset-1").Return(true, nil)
		m.availability.EXPECT().ReserveAsset(gomock.Any(), "asset-1", gomock.Any()).Return("", errors.New("inventory conflict"))

		_, err := uc.CreateOrder(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if !errors.Is(err, ErrReservationFailed) {
			t.Fatalf("expected ErrReservationFailed, got %v", err)
		}
	})

	t.Run("success reserves then persists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		cfg := pricedConfigForTest("asset-1", "1215.40")
		m.pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(cfg, nil)
		m.availability.EXPECT().CheckAvailability(gomock.Any(), "asset-1").Return(true, nil)
		m.availability.EXPECT().ReserveAsset(gomock.Any(), "asset-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, orderRef string) (string, error) {
				if orderRef == "" {
					t.Fatalf("expected order reference for reservation")
				}
				return "res-9", nil
			},
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Order{})).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if o.Status != entities.OrderStatusReserved {
					t.Fatalf("expected reserved status, got %s", o.Status)
				}
				if o.ReservationID != "res-9" {
					t.Fatalf("expected reservation id, got %s", o.ReservationID)
				}
				if !o.Snapshot.GrandTotal.Equal(cfg.Snapshot.GrandTotal) {
					t.Fatalf("snapshot total mismatch: %s", o.Snapshot.GrandTotal)
				}
				return o, nil
			},
		)

		o, err := uc.CreateOrder(context.Background(), "comp-1", "PO-77", "asset-1", "cfg-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID == "" {
			t.Fatalf("expected generated order id")
		}
	})
}

func TestOrderUseCase_ConvertQuote(t *testing.T) {
	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.ConvertQuote(context.Background(), "q-1", "comp-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("another company's quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(activeQuoteForTest(), nil)

		_, err := uc.ConvertQuote(context.Background(), "q-1", "comp-2")
		if !errors.Is(err, ErrQuoteAccessDenied) {
			t.Fatalf("expected ErrQuoteAccessDenied, got %v", err)
		}
	})

	t.Run("already converted reports existing order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		q := activeQuoteForTest()
		q.Status = entities.QuoteStatusConverted
		existing := "o-previous"
		q.ConvertedOrderID = &existing
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)

		_, err := uc.ConvertQuote(context.Background(), "q-1", "comp-1")
		if !errors.Is(err, ErrQuoteAlreadyConverted) {
			t.Fatalf("expected ErrQuoteAlreadyConverted, got %v", err)
		}
	})

	t.Run("expired quote persists the transition and rejects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		q := activeQuoteForTest()
		q.ExpiresAt = time.Now().UTC().Add(-time.Hour)
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		m.quoteRepo.EXPECT().MarkExpired(gomock.Any(), "q-1").Return(q, nil)

		_, err := uc.ConvertQuote(context.Background(), "q-1", "comp-1")
		if !errors.Is(err, ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})

	t.Run("success reuses the frozen snapshot and flips the quote last", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		q := activeQuoteForTest()
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		// No pricing fetch on the quote path: the snapshot is reused verbatim.
		m.availability.EXPECT().CheckAvailability(gomock.Any(), "asset-1").Return(true, nil)
		m.availability.EXPECT().ReserveAsset(gomock.Any(), "asset-1", gomock.Any()).Return("res-9", nil)

		var persistedID string
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				if !o.Snapshot.GrandTotal.Equal(q.Snapshot.GrandTotal) {
					t.Fatalf("expected quote snapshot reused, got total %s", o.Snapshot.GrandTotal)
				}
				persistedID = o.ID
				return o, nil
			},
		)
		m.quoteRepo.EXPECT().MarkConverted(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id, orderID string) (entities.Quote, error) {
				if orderID != persistedID {
					t.Fatalf("expected back-reference to persisted order")
				}
				converted := q
				converted.Status = entities.QuoteStatusConverted
				converted.ConvertedOrderID = &orderID
				return converted, nil
			},
		)

		o, err := uc.ConvertQuote(context.Background(), "q-1", "comp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusReserved {
			t.Fatalf("expected reserved order, got %s", o.Status)
		}
	})

	t.Run("losing the conversion race fails the duplicate order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		q := activeQuoteForTest()
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)
		m.availability.EXPECT().CheckAvailability(gomock.Any(), "asset-1").Return(true, nil)
		m.availability.EXPECT().ReserveAsset(gomock.Any(), "asset-1", gomock.Any()).Return("res-9", nil)

		var persistedID string
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.Order) (entities.Order, error) {
				persistedID = o.ID
				return o, nil
			},
		)
		// Guard failed: someone else converted first.
		m.quoteRepo.EXPECT().MarkConverted(gomock.Any(), "q-1", gomock.Any()).Return(entities.Quote{}, nil)
		m.repo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any(), entities.OrderStatusReserved, entities.OrderStatusFailed).DoAndReturn(
			func(_ context.Context, id string, _, _ entities.OrderStatus) (entities.Order, error) {
				if id != persistedID {
					t.Fatalf("expected the loser's own order to be failed")
				}
				return entities.Order{ID: id, Status: entities.OrderStatusFailed}, nil
			},
		)
		winner := "o-winner"
		fresh := q
		fresh.Status = entities.QuoteStatusConverted
		fresh.ConvertedOrderID = &winner
		m.quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(fresh, nil)

		_, err := uc.ConvertQuote(context.Background(), "q-1", "comp-1")
		if !errors.Is(err, ErrQuoteAlreadyConverted) {
			t.Fatalf("expected ErrQuoteAlreadyConverted, got %v", err)
		}
	})
}

func TestOrderUseCase_Transitions(t *testing.T) {
	t.Run("confirm requires back office", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, nil, nil, nil, nil)
		_, err := uc.ConfirmOrder(context.Background(), "o-1", entities.RoleCustomerBuyer)
		if !errors.Is(err, ErrOrderActionNotAllowed) {
			t.Fatalf("expected ErrOrderActionNotAllowed, got %v", err)
		}
	})

	t.Run("confirm success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: entities.OrderStatusReserved}, nil)
		m.repo.EXPECT().TransitionStatus(gomock.Any(), "o-1", entities.OrderStatusReserved, entities.OrderStatusConfirmed).
			Return(entities.Order{ID: "o-1", Status: entities.OrderStatusConfirmed}, nil)

		o, err := uc.ConfirmOrder(context.Background(), "o-1", entities.RoleBackOffice)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", o.Status)
		}
	})

	t.Run("ship from wrong status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: entities.OrderStatusReserved}, nil)

		_, err := uc.MarkShipped(context.Background(), "o-1")
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})

	t.Run("transition raced away", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{ID: "o-1", Status: entities.OrderStatusShipped}, nil)
		m.repo.EXPECT().TransitionStatus(gomock.Any(), "o-1", entities.OrderStatusShipped, entities.OrderStatusDelivered).
			Return(entities.Order{}, nil)

		_, err := uc.MarkDelivered(context.Background(), "o-1")
		if !errors.Is(err, ErrInvalidOrderStatus) {
			t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
		}
	})
}

func TestOrderUseCase_InvoiceableTotal(t *testing.T) {
	t.Run("snapshot total plus frozen option prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{
			ID:       "o-1",
			Status:   entities.OrderStatusConfirmed,
			Snapshot: snapshotForTest("1215.40"),
		}, nil)
		m.optionRepo.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return([]entities.OrderOption{
			{OptionID: "opt-a", UnitPrice: decimal.RequireFromString("49.90")},
			{OptionID: "opt-b", UnitPrice: decimal.RequireFromString("120.00")},
		}, nil)

		total, err := uc.InvoiceableTotal(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.RequireFromString("1385.30")) {
			t.Fatalf("expected 1385.30, got %s", total)
		}
	})

	t.Run("no options", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCaseForTest(ctrl)

		m.repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(entities.Order{
			ID:       "o-1",
			Snapshot: snapshotForTest("1215.40"),
		}, nil)
		m.optionRepo.EXPECT().ListByOrderID(gomock.Any(), "o-1").Return(nil, nil)

		total, err := uc.InvoiceableTotal(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.RequireFromString("1215.40")) {
			t.Fatalf("expected 1215.40, got %s", total)
		}
	})
}
