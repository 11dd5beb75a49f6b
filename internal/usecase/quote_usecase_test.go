package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
	mock_interfaces "refurbmarket/internal/usecase/interfaces/mocks"
)

func snapshotForTest(total string) entities.PricingSnapshot {
	grand := decimal.RequireFromString(total)
	unit := grand.Sub(decimal.RequireFromString("100.00"))
	return entities.PricingSnapshot{
		Components: []entities.PricedComponent{
			{Type: "base_unit", Reference: "REF-1", Quantity: 1, UnitPrice: unit, LineTotal: unit},
		},
		LaborCost:  decimal.RequireFromString("60.00"),
		Subtotal:   unit.Add(decimal.RequireFromString("60.00")),
		Margin:     decimal.RequireFromString("40.00"),
		GrandTotal: grand,
		Currency:   "EUR",
		CapturedAt: time.Now().UTC(),
	}
}

func pricedConfigForTest(assetID string, total string) interfaces.PricedConfiguration {
	return interfaces.PricedConfiguration{
		ConfigID:     "cfg-1",
		AssetID:      assetID,
		Validated:    true,
		LeadTimeDays: 12,
		Snapshot:     snapshotForTest(total),
	}
}

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.CreateQuote(context.Background(), "  ", "ref", "asset-1", "cfg-1")
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("pricing unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pricing := mock_interfaces.NewMockIPricingSource(ctrl)
		uc := NewQuoteUseCase(nil, pricing)

		pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(interfaces.PricedConfiguration{}, errors.New("engine down"))

		_, err := uc.CreateQuote(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if !errors.Is(err, ErrPricingUnavailable) {
			t.Fatalf("expected ErrPricingUnavailable, got %v", err)
		}
	})

	t.Run("configuration not validated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pricing := mock_interfaces.NewMockIPricingSource(ctrl)
		uc := NewQuoteUseCase(nil, pricing)

		cfg := pricedConfigForTest("asset-1", "1215.40")
		cfg.Validated = false
		pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(cfg, nil)

		_, err := uc.CreateQuote(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if !errors.Is(err, ErrConfigurationNotValidated) {
			t.Fatalf("expected ErrConfigurationNotValidated, got %v", err)
		}
	})

	t.Run("configuration priced for another asset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pricing := mock_interfaces.NewMockIPricingSource(ctrl)
		uc := NewQuoteUseCase(nil, pricing)

		pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(pricedConfigForTest("asset-other", "1215.40"), nil)

		_, err := uc.CreateQuote(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if !errors.Is(err, ErrConfigurationNotValidated) {
			t.Fatalf("expected ErrConfigurationNotValidated, got %v", err)
		}
	})

	t.Run("success freezes snapshot and sets validity window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		pricing := mock_interfaces.NewMockIPricingSource(ctrl)
		uc := NewQuoteUseCase(repo, pricing)

		cfg := pricedConfigForTest("asset-1", "1215.40")
		pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(cfg, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || q.CompanyID != "comp-1" || q.AssetID != "asset-1" || q.ConfigID != "cfg-1" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if q.Status != entities.QuoteStatusActive {
					t.Fatalf("expected active status, got %s", q.Status)
				}
				if !q.Snapshot.GrandTotal.Equal(cfg.Snapshot.GrandTotal) {
					t.Fatalf("snapshot total mismatch: %s", q.Snapshot.GrandTotal)
				}
				days := q.ExpiresAt.Sub(q.CreatedAt).Hours() / 24
				if days < 29.9 || days > 30.1 {
					t.Fatalf("expected 30 day validity, got %.2f days", days)
				}
				return q, nil
			},
		)

		q, err := uc.CreateQuote(context.Background(), " comp-1 ", "PO-77", "asset-1", "cfg-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.LeadTimeDays != 12 {
			t.Fatalf("expected lead time 12, got %d", q.LeadTimeDays)
		}
	})

	t.Run("snapshot is a deep copy of the priced configuration", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		pricing := mock_interfaces.NewMockIPricingSource(ctrl)
		uc := NewQuoteUseCase(repo, pricing)

		cfg := pricedConfigForTest("asset-1", "1215.40")
		pricing.EXPECT().GetConfiguration(gomock.Any(), "cfg-1").Return(cfg, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
		)

		q, err := uc.CreateQuote(context.Background(), "comp-1", "", "asset-1", "cfg-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Mutating the source must not reach the frozen copy.
		cfg.Snapshot.Components[0].UnitPrice = decimal.RequireFromString("9999.99")
		if q.Snapshot.Components[0].UnitPrice.Equal(cfg.Snapshot.Components[0].UnitPrice) {
			t.Fatalf("snapshot shares component storage with the priced configuration")
		}
	})
}

func TestQuoteUseCase_GetQuote(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.GetQuote(context.Background(), "  ", "comp-1")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.GetQuote(context.Background(), "q-1", "comp-1")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("access denied for another company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", CompanyID: "comp-1"}, nil)

		_, err := uc.GetQuote(context.Background(), "q-1", "comp-2")
		if !errors.Is(err, ErrQuoteAccessDenied) {
			t.Fatalf("expected ErrQuoteAccessDenied, got %v", err)
		}
	})

	t.Run("past expiry reads as expired without persisting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:        "q-1",
			CompanyID: "comp-1",
			Status:    entities.QuoteStatusActive,
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
		}, nil)

		q, err := uc.GetQuote(context.Background(), "q-1", "comp-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusExpired {
			t.Fatalf("expected expired status, got %s", q.Status)
		}
	})
}

func TestQuoteUseCase_ListQuotes(t *testing.T) {
	t.Run("invalid company", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.ListQuotes(context.Background(), " ", interfaces.QuoteListFilter{})
		if !errors.Is(err, ErrInvalidQuoteInput) {
			t.Fatalf("expected ErrInvalidQuoteInput, got %v", err)
		}
	})

	t.Run("filters by effective status and expiry window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		now := time.Now().UTC()
		repo.EXPECT().ListByCompanyID(gomock.Any(), "comp-1").Return([]entities.Quote{
			{ID: "q-live", CompanyID: "comp-1", Status: entities.QuoteStatusActive, ExpiresAt: now.Add(48 * time.Hour)},
			{ID: "q-stale", CompanyID: "comp-1", Status: entities.QuoteStatusActive, ExpiresAt: now.Add(-time.Hour)},
			{ID: "q-done", CompanyID: "comp-1", Status: entities.QuoteStatusConverted, ExpiresAt: now.Add(48 * time.Hour)},
		}, nil)

		active := entities.QuoteStatusActive
		quotes, err := uc.ListQuotes(context.Background(), "comp-1", interfaces.QuoteListFilter{Status: &active})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quotes) != 1 || quotes[0].ID != "q-live" {
			t.Fatalf("unexpected result: %+v", quotes)
		}
	})

	t.Run("expiring before filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		now := time.Now().UTC()
		repo.EXPECT().ListByCompanyID(gomock.Any(), "comp-1").Return([]entities.Quote{
			{ID: "q-soon", CompanyID: "comp-1", Status: entities.QuoteStatusActive, ExpiresAt: now.Add(24 * time.Hour)},
			{ID: "q-later", CompanyID: "comp-1", Status: entities.QuoteStatusActive, ExpiresAt: now.Add(20 * 24 * time.Hour)},
		}, nil)

		cutoff := now.Add(72 * time.Hour)
		quotes, err := uc.ListQuotes(context.Background(), "comp-1", interfaces.QuoteListFilter{ExpiringBefore: &cutoff})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(quotes) != 1 || quotes[0].ID != "q-soon" {
			t.Fatalf("unexpected result: %+v", quotes)
		}
	})
}

func TestQuoteUseCase_ExtendExpiry(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("role not allowed", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.ExtendExpiry(context.Background(), "q-1", base, entities.RoleCustomerAdmin)
		if !errors.Is(err, ErrExtensionNotAllowed) {
			t.Fatalf("expected ErrExtensionNotAllowed, got %v", err)
		}
	})

	t.Run("new expiry not after current", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ExpiresAt: base}, nil)

		_, err := uc.ExtendExpiry(context.Background(), "q-1", base.Add(-time.Hour), entities.RoleSalesInternal)
		if !errors.Is(err, ErrInvalidExtension) {
			t.Fatalf("expected ErrInvalidExtension, got %v", err)
		}
	})

	t.Run("success appends audit note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		newExpiry := base.AddDate(0, 0, 15)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ExpiresAt: base}, nil)
		repo.EXPECT().ExtendExpiry(gomock.Any(), "q-1", newExpiry, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, exp time.Time, note string) (entities.Quote, error) {
				if note == "" {
					t.Fatalf("expected audit note")
				}
				return entities.Quote{ID: id, ExpiresAt: exp, AuditNotes: []string{note}}, nil
			},
		)

		q, err := uc.ExtendExpiry(context.Background(), " q-1 ", newExpiry, entities.RoleSalesInternal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !q.ExpiresAt.Equal(newExpiry) || len(q.AuditNotes) != 1 {
			t.Fatalf("unexpected result: %+v", q)
		}
	})

	t.Run("guard failed means not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ExpiresAt: base}, nil)
		repo.EXPECT().ExtendExpiry(gomock.Any(), "q-1", gomock.Any(), gomock.Any()).Return(entities.Quote{}, nil)

		_, err := uc.ExtendExpiry(context.Background(), "q-1", base.AddDate(0, 0, 5), entities.RoleSalesInternal)
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}
