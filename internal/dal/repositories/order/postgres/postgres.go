package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kittiBank/order-manage-web/internal/dal/postgres"
	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                 string    `db:"id"`
	CustomerId         string    `db:"customer_id"`
	ShippingName       string    `db:"shipping_name"`
	ShippingPhone      string    `db:"shipping_phone"`
	ShippingAddress    string    `db:"shipping_address"`
	ShippingProvince   string    `db:"shipping_province"`
	ShippingPostalCode string    `db:"shipping_postal_code"`
	Subtotal           int64     `db:"subtotal"`
	ShippingFee        int64     `db:"shipping_fee"`
	Total              int64     `db:"total"`
	Note               string    `db:"note"`
	Status             string    `db:"status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id          int64  `db:"id"`
	OrderId     string `db:"order_id"`
	ProductId   string `db:"product_id"`
	ProductName string `db:"product_name"`
	Quantity    int    `db:"quantity"`
	Price       int64  `db:"price"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:         o.Id,
		CustomerID: o.CustomerId,
		ShippingAddress: order.ShippingAddress{
			Name:       o.ShippingName,
			Phone:      o.ShippingPhone,
			Address:    o.ShippingAddress,
			Province:   o.ShippingProvince,
			PostalCode: o.ShippingPostalCode,
		},
		Subtotal:    o.Subtotal,
		ShippingFee: o.ShippingFee,
		Total:       o.Total,
		Note:        o.Note,
		Status:      status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       []order.OrderItem{},
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:                 o.ID,
		CustomerId:         o.CustomerID,
		ShippingName:       o.ShippingAddress.Name,
		ShippingPhone:      o.ShippingAddress.Phone,
		ShippingAddress:    o.ShippingAddress.Address,
		ShippingProvince:   o.ShippingAddress.Province,
		ShippingPostalCode: o.ShippingAddress.PostalCode,
		Subtotal:           o.Subtotal,
		ShippingFee:        o.ShippingFee,
		Total:              o.Total,
		Note:               o.Note,
		Status:             o.Status.String(),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

type PostgresOrderRepository struct {
	client *postgres.Client
}

func NewPostgresOrderRepository(client *postgres.Client) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		client: client,
	}
}

var orderColumns = []string{
	"id",
	"customer_id",
	"shipping_name",
	"shipping_phone",
	"shipping_address",
	"shipping_province",
	"shipping_postal_code",
	"subtotal",
	"shipping_fee",
	"total",
	"note",
	"status",
	"created_at",
	"updated_at",
}

// BuildQuerySQL builds the filtered select over orders. Exposed for tests.
func BuildQuerySQL(filter order.Filter) (string, []interface{}, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		PlaceholderFormat(sq.Dollar)

	if filter.CustomerID != "" {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.MinPrice > 0 {
		builder = builder.Where(sq.GtOrEq{"total": filter.MinPrice})
	}
	if filter.MaxPrice > 0 {
		builder = builder.Where(sq.LtOrEq{"total": filter.MaxPrice})
	}

	return builder.ToSql()
}

// Query retrieves the filtered set of orders with their items.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	query, args, err := BuildQuerySQL(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	var dals []OrderDal
	if err := r.client.DB().SelectContext(ctx, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	result := make([]order.Order, 0, len(dals))
	ids := make([]string, 0, len(dals))
	for i := range dals {
		model, err := dals[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
		ids = append(ids, model.ID)
	}

	if len(result) == 0 {
		return result, nil
	}

	items, err := r.queryItems(ctx, r.client.DB(), ids)
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Items = append(result[i].Items, items[result[i].ID]...)
	}

	return result, nil
}

func (r *PostgresOrderRepository) queryItems(
	ctx context.Context,
	conn sqlx.ExtContext,
	orderIds []string,
) (map[string][]order.OrderItem, error) {
	query := `
		SELECT
			id,
			order_id,
			product_id,
			product_name,
			quantity,
			price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	var dals []OrderItemDal
	if err := sqlx.SelectContext(ctx, conn, &dals, query, pq.Array(orderIds)); err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	items := make(map[string][]order.OrderItem, len(orderIds))
	for _, dal := range dals {
		items[dal.OrderId] = append(items[dal.OrderId], order.OrderItem{
			ProductID:   dal.ProductId,
			ProductName: dal.ProductName,
			Quantity:    dal.Quantity,
			Price:       dal.Price,
		})
	}

	return items, nil
}

// GetByID retrieves a single order with its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	var dal OrderDal
	if err := r.client.DB().GetContext(ctx, &dal, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	items, err := r.queryItems(ctx, r.client.DB(), []string{id})
	if err != nil {
		return nil, err
	}
	model.Items = append(model.Items, items[id]...)

	return model, nil
}

// Insert stores an order and its items in one transaction.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) error {
	tx, err := r.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dal := OrderDalFromModel(&o)
	query, args, err := sq.Insert("orders").
		Columns(orderColumns...).
		Values(
			dal.Id,
			dal.CustomerId,
			dal.ShippingName,
			dal.ShippingPhone,
			dal.ShippingAddress,
			dal.ShippingProvince,
			dal.ShippingPostalCode,
			dal.Subtotal,
			dal.ShippingFee,
			dal.Total,
			dal.Note,
			dal.Status,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}

	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sqlx.Tx, orderID string, items []order.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	builder := sq.Insert("order_items").
		Columns("order_id", "product_id", "product_name", "quantity", "price").
		PlaceholderFormat(sq.Dollar)
	for _, item := range items {
		builder = builder.Values(orderID, item.ProductID, item.ProductName, item.Quantity, item.Price)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build items insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	return nil
}

// Update replaces the order row and rewrites its items in one transaction.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) error {
	tx, err := r.client.DB().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dal := OrderDalFromModel(&o)
	query, args, err := sq.Update("orders").
		Set("customer_id", dal.CustomerId).
		Set("shipping_name", dal.ShippingName).
		Set("shipping_phone", dal.ShippingPhone).
		Set("shipping_address", dal.ShippingAddress).
		Set("shipping_province", dal.ShippingProvince).
		Set("shipping_postal_code", dal.ShippingPostalCode).
		Set("subtotal", dal.Subtotal).
		Set("shipping_fee", dal.ShippingFee).
		Set("total", dal.Total).
		Set("note", dal.Note).
		Set("status", dal.Status).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return order.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", o.ID); err != nil {
		return fmt.Errorf("failed to delete stale order items: %w", err)
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an order. Items go with it via the FK cascade.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.client.DB().ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return order.ErrNotFound
	}

	return nil
}
