package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kittiBank/order-manage-web/internal/dal/postgres"
	"github.com/kittiBank/order-manage-web/internal/service/models/user"
)

const uniqueViolationCode = "23505"

// UserDal represents the user data access layer model.
type UserDal struct {
	Id           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Avatar       string    `db:"avatar"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() (*user.User, error) {
	role, err := user.ParseRole(u.Role)
	if err != nil {
		return nil, err
	}

	return &user.User{
		ID:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		Role:         role,
		Avatar:       u.Avatar,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

type PostgresUserRepository struct {
	client *postgres.Client
}

func NewPostgresUserRepository(client *postgres.Client) *PostgresUserRepository {
	return &PostgresUserRepository{
		client: client,
	}
}

var userColumns = []string{
	"id",
	"name",
	"email",
	"role",
	"avatar",
	"password_hash",
	"created_at",
	"updated_at",
}

// Insert stores a new user. A duplicate email maps to user.ErrEmailExists.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) error {
	query, args, err := sq.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.Role.String(), u.Avatar, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return user.ErrEmailExists
		}

		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *PostgresUserRepository) getBy(ctx context.Context, pred sq.Eq) (*user.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	var dal UserDal
	if err := r.client.DB().GetContext(ctx, &dal, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return dal.ToModel()
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}
