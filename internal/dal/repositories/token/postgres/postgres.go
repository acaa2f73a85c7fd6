package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/itokenrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/postgres"
)

type PostgresTokenRepository struct {
	client *postgres.Client
}

func NewPostgresTokenRepository(client *postgres.Client) *PostgresTokenRepository {
	return &PostgresTokenRepository{
		client: client,
	}
}

func (r *PostgresTokenRepository) Insert(ctx context.Context, token itokenrepo.RefreshToken) error {
	query, args, err := sq.Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at", "created_at").
		Values(token.Token, token.UserID, token.ExpiresAt, token.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	return nil
}

func (r *PostgresTokenRepository) Get(ctx context.Context, token string) (*itokenrepo.RefreshToken, error) {
	query, args, err := sq.Select("token", "user_id", "expires_at", "created_at").
		From("refresh_tokens").
		Where(sq.Eq{"token": token}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build token query: %w", err)
	}

	var record struct {
		Token     string    `db:"token"`
		UserID    string    `db:"user_id"`
		ExpiresAt time.Time `db:"expires_at"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.client.DB().GetContext(ctx, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itokenrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &itokenrepo.RefreshToken{
		Token:     record.Token,
		UserID:    record.UserID,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (r *PostgresTokenRepository) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	query, args, err := sq.Update("refresh_tokens").
		Set("expires_at", expiresAt).
		Where(sq.Eq{"token": token}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to touch refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return itokenrepo.ErrNotFound
	}

	return nil
}

func (r *PostgresTokenRepository) RevokeByUser(ctx context.Context, userID string) error {
	if _, err := r.client.DB().ExecContext(
		ctx,
		"DELETE FROM refresh_tokens WHERE user_id = $1",
		userID,
	); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}
