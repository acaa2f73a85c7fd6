package getorder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Get(ctx context.Context, id string) (*order.Order, error)
}

// GetOrder handles the get single order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	o, err := service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to fetch order")
		slog.Error("Error fetching order", "order_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
