package iorderrepo

import (
	"context"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// IOrderRepository is the storage contract for orders. Query returns the
// filtered set unsorted; sorting and cursor pagination are applied by the
// service so cursor semantics do not depend on the backend.
type IOrderRepository interface {
	Query(ctx context.Context, filter order.Filter) ([]order.Order, error)
	GetByID(ctx context.Context, id string) (*order.Order, error)
	Insert(ctx context.Context, o order.Order) error
	Update(ctx context.Context, o order.Order) error
	Delete(ctx context.Context, id string) error
}
