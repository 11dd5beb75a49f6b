package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"refurbmarket/internal/domain/entities"
	"refurbmarket/internal/usecase/interfaces"
)

var (
	ErrQuoteNotFound             = errors.New("quote not found")
	ErrQuoteAccessDenied         = errors.New("quote belongs to another company")
	ErrInvalidQuoteID            = errors.New("invalid quote id")
	ErrInvalidQuoteInput         = errors.New("invalid quote input")
	ErrConfigurationNotValidated = errors.New("configuration not validated")
	ErrInvalidExtension          = errors.New("new expiry must be after current expiry")
	ErrExtensionNotAllowed       = errors.New("role cannot extend quotes")
	ErrPricingUnavailable        = errors.New("pricing source unavailable")
)

// IQuoteUseCase exposes the quote lifecycle.
//
// The pricing snapshot is captured exactly once, at creation; every other
// operation only copies or reads it. Conversion lives on IOrderUseCase since
// it is an order-creating sequence.
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, companyID, customerRef, assetID, configID string) (entities.Quote, error)
	GetQuote(ctx context.Context, quoteID, requestingCompanyID string) (entities.Quote, error)
	ListQuotes(ctx context.Context, companyID string, filter interfaces.QuoteListFilter) ([]entities.Quote, error)
	ExtendExpiry(ctx context.Context, quoteID string, newExpiry time.Time, role entities.Role) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo    interfaces.IQuoteRepository
	pricing interfaces.IPricingSource
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, pricing interfaces.IPricingSource) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, pricing: pricing}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, companyID, customerRef, assetID, configID string) (entities.Quote, error) {
	companyID = strings.TrimSpace(companyID)
	customerRef = strings.TrimSpace(customerRef)
	assetID = strings.TrimSpace(assetID)
	configID = strings.TrimSpace(configID)
	if companyID == "" || assetID == "" || configID == "" {
		return entities.Quote{}, ErrInvalidQuoteInput
	}

	log.Printf("[quote][usecase] create start company_id=%s asset_id=%s config_id=%s", companyID, assetID, configID)
	cfg, err := u.pricing.GetConfiguration(ctx, configID)
	if err != nil {
		log.Printf("[quote][usecase] pricing fetch failed config_id=%s err=%v", configID, err)
		return entities.Quote{}, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}
	if !cfg.Validated || cfg.AssetID != assetID {
		log.Printf("[quote][usecase] configuration rejected config_id=%s validated=%t asset_id=%s", configID, cfg.Validated, cfg.AssetID)
		return entities.Quote{}, ErrConfigurationNotValidated
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:           uuid.NewString(),
		CompanyID:    companyID,
		CustomerRef:  customerRef,
		AssetID:      assetID,
		ConfigID:     configID,
		Snapshot:     cfg.Snapshot.Clone(),
		LeadTimeDays: cfg.LeadTimeDays,
		Status:       entities.QuoteStatusActive,
		CreatedAt:    now,
		ExpiresAt:    now.AddDate(0, 0, entities.QuoteValidityDays),
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		log.Printf("[quote][usecase] create failed company_id=%s err=%v", companyID, err)
		return entities.Quote{}, err
	}
	log.Printf("[quote][usecase] create success quote_id=%s total=%s expires_at=%s", created.ID, created.Snapshot.GrandTotal, created.ExpiresAt.Format(time.RFC3339))
	return created, nil
}

// GetQuote is a pure read: an expired-but-active quote is reported expired
// without persisting the transition.
func (u *QuoteUseCase) GetQuote(ctx context.Context, quoteID, requestingCompanyID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.CompanyID != strings.TrimSpace(requestingCompanyID) {
		log.Printf("[quote][usecase] access denied quote_id=%s company_id=%s", quoteID, requestingCompanyID)
		return entities.Quote{}, ErrQuoteAccessDenied
	}

	q.Status = q.EffectiveStatus(time.Now().UTC())
	return q, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, companyID string, filter interfaces.QuoteListFilter) ([]entities.Quote, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, ErrInvalidQuoteInput
	}

	quotes, err := u.repo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]entities.Quote, 0, len(quotes))
	for _, q := range quotes {
		q.Status = q.EffectiveStatus(now)
		if filter.Status != nil && q.Status != *filter.Status {
			continue
		}
		if filter.ExpiringBefore != nil && !q.ExpiresAt.Before(*filter.ExpiringBefore) {
			continue
		}
		if filter.ExpiringAfter != nil && !q.ExpiresAt.After(*filter.ExpiringAfter) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// ExtendExpiry moves the validity window forward. Only the expiry field (plus
// an audit note) changes; snapshot and status are untouched.
func (u *QuoteUseCase) ExtendExpiry(ctx context.Context, quoteID string, newExpiry time.Time, role entities.Role) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if !role.CanExtendQuote() {
		log.Printf("[quote][usecase] extend denied quote_id=%s role=%s", quoteID, role)
		return entities.Quote{}, ErrExtensionNotAllowed
	}

	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !newExpiry.After(q.ExpiresAt) {
		return entities.Quote{}, ErrInvalidExtension
	}

	note := fmt.Sprintf("expiry extended from %s to %s", q.ExpiresAt.UTC().Format(time.RFC3339), newExpiry.UTC().Format(time.RFC3339))
	updated, err := u.repo.ExtendExpiry(ctx, quoteID, newExpiry.UTC(), note)
	if err != nil {
		log.Printf("[quote][usecase] extend failed quote_id=%s err=%v", quoteID, err)
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	log.Printf("[quote][usecase] extend success quote_id=%s new_expiry=%s", quoteID, newExpiry.UTC().Format(time.RFC3339))
	return updated, nil
}
