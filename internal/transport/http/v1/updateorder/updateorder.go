package updateorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, id string, req order.UpdateRequest) (*order.Order, error)
}

// UpdateOrder handles the partial order update request.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	var req order.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding update order request", "order_id", id, "error", err)

		return
	}

	updated, err := service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrInvalidRequest):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "Failed to update order")
			slog.Error("Error updating order", "order_id", id, "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
