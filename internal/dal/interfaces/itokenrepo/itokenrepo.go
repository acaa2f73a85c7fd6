package itokenrepo

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("refresh token not found")

// RefreshToken is a server-side refresh token record.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ITokenRepository stores refresh tokens issued on login. Tokens are looked
// up on refresh, and revoked per user on logout.
type ITokenRepository interface {
	Insert(ctx context.Context, token RefreshToken) error
	Get(ctx context.Context, token string) (*RefreshToken, error)
	Touch(ctx context.Context, token string, expiresAt time.Time) error
	RevokeByUser(ctx context.Context, userID string) error
}
