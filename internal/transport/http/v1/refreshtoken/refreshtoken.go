package refreshtoken

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type request struct {
	RefreshToken string `json:"refreshToken"`
}

type response struct {
	AccessToken string `json:"accessToken"`
}

// RefreshToken handles the access token refresh request.
func RefreshToken(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding refresh request", "error", err)

		return
	}

	if req.RefreshToken == "" {
		respond.Error(w, http.StatusBadRequest, "refreshToken is required")

		return
	}

	accessToken, err := service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidToken) {
			respond.Error(w, http.StatusUnauthorized, "Invalid or expired refresh token")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Token refresh failed")
		slog.Error("Error refreshing token", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{AccessToken: accessToken})
}
