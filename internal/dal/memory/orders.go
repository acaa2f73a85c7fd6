package memory

import (
	"context"
	"sync"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// OrderRepository is a process-local order store. It preserves insertion
// order and returns deep-enough copies so callers can never mutate stored
// state through a returned snapshot.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// NewSeededOrderRepository creates a repository pre-populated with the demo
// data set.
func NewSeededOrderRepository() *OrderRepository {
	return &OrderRepository{orders: seedOrders()}
}

func cloneOrder(o order.Order) order.Order {
	c := o
	c.Items = make([]order.OrderItem, len(o.Items))
	copy(c.Items, o.Items)

	return c
}

func matches(o order.Order, filter order.Filter) bool {
	if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
		return false
	}
	if filter.Status != "" && o.Status != filter.Status {
		return false
	}
	if filter.MinPrice > 0 && o.Total < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && o.Total > filter.MaxPrice {
		return false
	}

	return true
}

// Query returns the filtered, unsorted snapshot of stored orders.
func (r *OrderRepository) Query(_ context.Context, filter order.Filter) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if matches(o, filter) {
			result = append(result, cloneOrder(o))
		}
	}

	return result, nil
}

// GetByID returns the order with the given id or order.ErrNotFound.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			c := cloneOrder(o)
			return &c, nil
		}
	}

	return nil, order.ErrNotFound
}

// Insert appends a new order to the store.
func (r *OrderRepository) Insert(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, cloneOrder(o))

	return nil
}

// Update replaces the stored order with the same id.
func (r *OrderRepository) Update(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = cloneOrder(o)
			return nil
		}
	}

	return order.ErrNotFound
}

// Delete removes the order with the given id. The record is removed
// permanently, there is no tombstone.
func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return order.ErrNotFound
}
