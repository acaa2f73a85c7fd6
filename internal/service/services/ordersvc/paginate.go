package ordersvc

import (
	"sort"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
)

// sortOrders sorts the filtered set in place. The sort is stable so that a
// cursor taken under one request resolves to the same offset under the next;
// cursor correctness depends on identical ordering between calls.
func sortOrders(orders []order.Order, sortBy, sortOrder string) {
	less := func(a, b order.Order) bool {
		if sortBy == order.SortByTotal {
			return a.Total < b.Total
		}

		return a.CreatedAt.Before(b.CreatedAt)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if sortOrder == order.SortOrderDesc {
			return less(orders[j], orders[i])
		}

		return less(orders[i], orders[j])
	})
}

// paginate slices a page out of the sorted-filtered set. The cursor is the id
// of the last element of the previous page; the window starts immediately
// after it, or at the beginning when the cursor is absent or unknown.
func paginate(sorted []order.Order, cursor string, limit int) ([]order.Order, order.Pagination) {
	start := 0
	if cursor != "" {
		for i := range sorted {
			if sorted[i].ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	page := sorted[start:end]
	hasMore := start+limit < len(sorted)

	pagination := order.Pagination{
		HasMore: hasMore,
		Total:   len(sorted),
	}
	if hasMore && len(page) > 0 {
		pagination.NextCursor = page[len(page)-1].ID
	}

	return page, pagination
}
