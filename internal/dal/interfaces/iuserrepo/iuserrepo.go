package iuserrepo

import (
	"context"

	"github.com/kittiBank/order-manage-web/internal/service/models/user"
)

// IUserRepository is the storage contract for user accounts.
type IUserRepository interface {
	Insert(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
