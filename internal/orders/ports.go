package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/order-service/internal/product"
)

var ErrNotFound = errors.New("order not found")

// Store persists orders inside one atomic unit of work per call.
type Store interface {
	CreateOrder(ctx context.Context, o Order) error
	GetOrder(ctx context.Context, id string) (Order, error)
}

// ProductFetcher is the remote validation dependency; see product.Client.
type ProductFetcher interface {
	Fetch(ctx context.Context, productID string) (product.Snapshot, error)
}

// EventPublisher accepts a fire-and-forget message; nil disables publishing.
type EventPublisher interface {
	Publish(key, value []byte)
}
