package order

import (
	"context"

	"starbrew/internal/domain"
)

// Repository is the durable order sink. Create is the only write the
// checkout flow performs; everything else serves order history display.
type Repository interface {
	Create(ctx context.Context, o domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}
