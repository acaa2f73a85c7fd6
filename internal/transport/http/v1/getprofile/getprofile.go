package getprofile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kittiBank/order-manage-web/internal/service/models/user"
	"github.com/kittiBank/order-manage-web/internal/transport/http/middleware/authmw"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Profile(ctx context.Context, userID string) (*user.User, error)
}

type response struct {
	User *user.User `json:"user"`
}

// GetProfile handles the profile request of the authenticated user.
func GetProfile(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := authmw.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing authentication")

		return
	}

	u, err := service.Profile(r.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Failed to get profile")
		slog.Error("Error fetching profile", "user_id", claims.UserID(), "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{User: u})
}
