package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, q order.Query) (*order.Page, error)
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	q := order.Query{
		Cursor:     query.Get("cursor"),
		CustomerID: query.Get("customerId"),
		SortBy:     query.Get("sortBy"),
		SortOrder:  query.Get("sortOrder"),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			q.Limit = limit
		}
	}
	if minStr := query.Get("minPrice"); minStr != "" {
		if min, err := strconv.ParseInt(minStr, 10, 64); err == nil {
			q.MinPrice = min
		}
	}
	if maxStr := query.Get("maxPrice"); maxStr != "" {
		if max, err := strconv.ParseInt(maxStr, 10, 64); err == nil {
			q.MaxPrice = max
		}
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status, err := order.ParseStatus(statusStr)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid status filter")

			return
		}
		q.Status = status
	}

	page, err := service.List(r.Context(), q)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		slog.Error("Error listing orders", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, page)
}
