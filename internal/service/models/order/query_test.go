package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

func TestNormalize_Defaults(t *testing.T) {
	q := order.Query{}

	q.Normalize()

	assert.Equal(t, order.DefaultLimit, q.Limit)
	assert.Equal(t, order.SortByCreatedAt, q.SortBy)
	assert.Equal(t, order.SortOrderDesc, q.SortOrder)
}

func TestNormalize_CapsExcessiveLimit(t *testing.T) {
	q := order.Query{Limit: 1000000}

	q.Normalize()

	assert.Equal(t, order.MaxLimit, q.Limit)
}

func TestNormalize_KeepsValidValues(t *testing.T) {
	q := order.Query{Limit: 25, SortBy: order.SortByTotal, SortOrder: order.SortOrderAsc}

	q.Normalize()

	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, order.SortByTotal, q.SortBy)
	assert.Equal(t, order.SortOrderAsc, q.SortOrder)
}
