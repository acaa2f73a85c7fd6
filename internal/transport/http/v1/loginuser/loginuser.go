package loginuser

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
	Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error)
}

type request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type response struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresIn    int64      `json:"expiresIn"`
	User         *user.User `json:"user"`
}

// LoginUser handles the login request.
func LoginUser(w http.ResponseWriter, r *http.Request, service service) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding login request", "error", err)

		return
	}

	result, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "Invalid email or password")

			return
		}

		respond.Error(w, http.StatusInternalServerError, "Login failed")
		slog.Error("Error logging in", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		User:         result.User,
	})
}
