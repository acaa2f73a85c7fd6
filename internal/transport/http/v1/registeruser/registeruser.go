package registeruser

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kittiBank/order-manage-web/internal/service/models/user"
	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Register(ctx context.Context, req authsvc.RegisterRequest) (*user.User, error)
}

type response struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

// RegisterUser handles the account registration request.
func RegisterUser(w http.ResponseWriter, r *http.Request, service service) {
	var req authsvc.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding register request", "error", err)

		return
	}

	u, err := service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput), errors.Is(err, user.ErrInvalidRole):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrEmailExists):
			respond.Error(w, http.StatusConflict, "Email already registered")
		default:
			respond.Error(w, http.StatusInternalServerError, "Registration failed")
			slog.Error("Error registering user", "error", err)
		}

		return
	}

	respond.JSON(w, http.StatusCreated, response{
		Message: "User registered successfully",
		User:    u,
	})
}
