package logoutuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kittiBank/order-manage-web/internal/transport/http/middleware/authmw"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Logout(ctx context.Context, userID string) error
}

// LogoutUser handles the logout request. The route is guarded by the auth
// middleware, so claims are always present.
func LogoutUser(w http.ResponseWriter, r *http.Request, service service) {
	claims, ok := authmw.FromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Missing authentication")

		return
	}

	if err := service.Logout(r.Context(), claims.UserID()); err != nil {
		respond.Error(w, http.StatusInternalServerError, "Logout failed")
		slog.Error("Error logging out", "user_id", claims.UserID(), "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, respond.Message{Message: "Logged out successfully"})
}
