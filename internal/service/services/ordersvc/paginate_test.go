package ordersvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

func makeOrders(n int) []order.Order {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	orders := make([]order.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, order.Order{
			ID:        "ORD-" + string(rune('A'+i)),
			Total:     int64((i*37)%100 + 10),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	return orders
}

func TestSortOrders_ByTotalAscending(t *testing.T) {
	orders := makeOrders(8)

	sortOrders(orders, order.SortByTotal, order.SortOrderAsc)

	for i := 1; i < len(orders); i++ {
		assert.LessOrEqual(t, orders[i-1].Total, orders[i].Total)
	}
}

func TestSortOrders_ByTotalDescending(t *testing.T) {
	orders := makeOrders(8)

	sortOrders(orders, order.SortByTotal, order.SortOrderDesc)

	for i := 1; i < len(orders); i++ {
		assert.GreaterOrEqual(t, orders[i-1].Total, orders[i].Total)
	}
}

func TestSortOrders_ByCreatedAtDescending(t *testing.T) {
	orders := makeOrders(8)

	sortOrders(orders, order.SortByCreatedAt, order.SortOrderDesc)

	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i-1].CreatedAt.Before(orders[i].CreatedAt))
	}
}

func TestPaginate_FirstPage(t *testing.T) {
	orders := makeOrders(7)

	page, pagination := paginate(orders, "", 3)

	require.Len(t, page, 3)
	assert.True(t, pagination.HasMore)
	assert.Equal(t, 7, pagination.Total)
	assert.Equal(t, page[2].ID, pagination.NextCursor)
	assert.Empty(t, pagination.PrevCursor)
}

func TestPaginate_CursorReconstructsOffsetPaging(t *testing.T) {
	orders := makeOrders(10)
	sortOrders(orders, order.SortByCreatedAt, order.SortOrderAsc)

	first, pg1 := paginate(orders, "", 4)
	require.True(t, pg1.HasMore)

	second, _ := paginate(orders, pg1.NextCursor, 4)

	require.Len(t, second, 4)
	assert.Equal(t, orders[4:8], second)
	assert.Equal(t, orders[0:4], first)
}

func TestPaginate_UnknownCursorStartsAtBeginning(t *testing.T) {
	orders := makeOrders(5)

	page, pagination := paginate(orders, "ORD-missing", 10)

	assert.Len(t, page, 5)
	assert.False(t, pagination.HasMore)
	assert.Empty(t, pagination.NextCursor)
}

func TestPaginate_LastPageHasNoCursor(t *testing.T) {
	orders := makeOrders(6)

	page, pagination := paginate(orders, orders[2].ID, 3)

	assert.Len(t, page, 3)
	assert.False(t, pagination.HasMore)
	assert.Empty(t, pagination.NextCursor)
	assert.Equal(t, 6, pagination.Total)
}

func TestPaginate_EmptySet(t *testing.T) {
	page, pagination := paginate(nil, "", 10)

	assert.Empty(t, page)
	assert.False(t, pagination.HasMore)
	assert.Zero(t, pagination.Total)
}
