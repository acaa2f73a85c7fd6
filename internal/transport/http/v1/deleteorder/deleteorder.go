package deleteorder

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
	Delete(ctx context.Context, id string) error
}

// DeleteOrder handles the delete order request.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id := chi.URLParam(r, "id")

	if err := service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Order not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to delete order")
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, respond.Message{Message: "Order deleted successfully"})
}
