package interfaces

import (
	"context"
	"time"

	"refurbmarket/internal/domain/entities"
)

// QuoteListFilter narrows company-scoped quote listings.
type QuoteListFilter struct {
	Status         *entities.QuoteStatus
	ExpiringBefore *time.Time
	ExpiringAfter  *time.Time
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// The marketplace must be able to:
//   - create a quote with its frozen snapshot
//   - resolve a quote by id and list a company's quotes
//   - persist the expired transition discovered during conversion
//   - flip active -> converted exactly once (conditional write), recording
//     the order back-reference
//   - extend the expiry window, appending an audit note
//
// Mutating methods follow the repository convention: a zero-value entity with
// an empty ID and a nil error means the guarded condition did not hold (row
// missing, or status already moved on).
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]entities.Quote, error)
	MarkExpired(ctx context.Context, id string) (entities.Quote, error)
	MarkConverted(ctx context.Context, id, orderID string) (entities.Quote, error)
	ExtendExpiry(ctx context.Context, id string, newExpiry time.Time, auditNote string) (entities.Quote, error)
}
