package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req order.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding create order request", "error", err)

		return
	}

	created, err := service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, order.ErrInvalidRequest) {
			respond.Error(w, http.StatusBadRequest, err.Error())

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to create order")
		slog.Error("Error creating order", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
