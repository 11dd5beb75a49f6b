package interfaces

import (
	"context"

	"refurbmarket/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// TransitionStatus is a conditional write guarded on the current status; an
// empty-ID result with a nil error means the order was missing or no longer
// in the expected status.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	TransitionStatus(ctx context.Context, id string, from, to entities.OrderStatus) (entities.Order, error)
}

// IOrderOptionRepository abstracts DynamoDB persistence for OrderOption.
//
// CreateBatch persists a whole attachment batch atomically (all-or-nothing);
// a nil slice with a nil error means at least one option in the batch was
// already attached and nothing was written.
type IOrderOptionRepository interface {
	CreateBatch(ctx context.Context, opts []entities.OrderOption) ([]entities.OrderOption, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.OrderOption, error)
}
