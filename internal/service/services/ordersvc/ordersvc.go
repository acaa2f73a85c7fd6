package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/iorderrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/ioutboxrepo"
	"github.com/kittiBank/order-manage-web/internal/service/models/event"
	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// OrderService is a service for managing orders.
type OrderService struct {
	orderRepo  iorderrepo.IOrderRepository
	outboxRepo ioutboxrepo.IOutboxRepository
	now        func() time.Time
	newID      func() string
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now:   time.Now,
		newID: func() string { return "ORD-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("ordersvc: order repository is required")
	}

	return s
}

// WithOrderRepository sets the order repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithOutboxRepository sets the outbox repository used to record order events.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// WithClock overrides the time source.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// WithIDGenerator overrides the order id generator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithIDGenerator(newID func() string) option {
	return func(s *OrderService) {
		s.newID = newID
	}
}

// List returns a page of orders. The repository supplies the filtered set;
// sorting and cursor pagination are applied here so both storage backends
// share identical cursor semantics.
func (s *OrderService) List(ctx context.Context, q order.Query) (*order.Page, error) {
	q.Normalize()

	filtered, err := s.orderRepo.Query(ctx, order.Filter{
		CustomerID: q.CustomerID,
		Status:     q.Status,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	sortOrders(filtered, q.SortBy, q.SortOrder)
	page, pagination := paginate(filtered, q.Cursor, q.Limit)

	return &order.Page{
		Data:       page,
		Pagination: pagination,
	}, nil
}

// Create validates the request, computes totals and stores the new order.
func (s *OrderService) Create(ctx context.Context, req order.CreateRequest) (*order.Order, error) {
	if req.CustomerID == "" || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: customerId and items are required", order.ErrInvalidRequest)
	}
	if req.ShippingAddress == (order.ShippingAddress{}) {
		return nil, fmt.Errorf("%w: shippingAddress is required", order.ErrInvalidRequest)
	}

	now := s.now()
	o := order.Order{
		ID:              s.newID(),
		CustomerID:      req.CustomerID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		ShippingFee:     req.ShippingFee,
		Note:            req.Note,
		Status:          order.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.RecalculateTotals()

	if err := s.orderRepo.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	s.recordEvent(ctx, event.TypeOrderCreated, &o)

	return &o, nil
}

// Get returns the order with the given id.
func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// Update merges the provided fields onto the stored order. Totals are
// recomputed only when items are supplied; UpdatedAt always moves forward.
func (s *OrderService) Update(ctx context.Context, id string, req order.UpdateRequest) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ShippingAddress != nil {
		o.ShippingAddress = *req.ShippingAddress
	}
	if req.Status != nil {
		if _, err := order.ParseStatus(req.Status.String()); err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", order.ErrInvalidRequest, *req.Status)
		}
		o.Status = *req.Status
	}
	if req.Note != nil {
		o.Note = *req.Note
	}
	if req.Items != nil {
		o.Items = *req.Items
		if req.ShippingFee != nil {
			o.ShippingFee = *req.ShippingFee
		}
		o.RecalculateTotals()
	}
	o.UpdatedAt = s.now()

	if err := s.orderRepo.Update(ctx, *o); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.recordEvent(ctx, event.TypeOrderUpdated, o)

	return o, nil
}

// Delete removes the order permanently.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordEvent(ctx, event.TypeOrderDeleted, &order.Order{ID: id})

	return nil
}

// recordEvent writes an outbox record for the mutation. Best effort: a
// failure here must not fail the request that already committed.
func (s *OrderService) recordEvent(ctx context.Context, eventType event.Type, o *order.Order) {
	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(o)
	if err != nil {
		slog.Error("Failed to marshal order event payload", "order_id", o.ID, "error", err)

		return
	}

	err = s.outboxRepo.Insert(ctx, event.OrderEvent{
		Type:        eventType,
		OrderID:     o.ID,
		Payload:     payload,
		ContentType: "application/json",
		CreatedAt:   s.now(),
	})
	if err != nil {
		slog.Error("Failed to record order event", "order_id", o.ID, "type", eventType, "error", err)
	}
}
