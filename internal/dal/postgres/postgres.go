package postgres

import (
	"embed"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Client represents a Postgres client.
type Client struct {
	db *sqlx.DB
}

// DB returns the underlying sqlx handle.
func (c *Client) DB() *sqlx.DB {
	return c.db
}

// Close closes the database connection for graceful shutdown.
func (c *Client) Close() error {
	return c.db.Close()
}

// MustNewClient creates a new Postgres client and runs pending migrations.
func MustNewClient() *Client {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("ORDER_PG_HOST"),
		viper.GetString("postgres.port"),
		os.Getenv("ORDER_PG_USER"),
		os.Getenv("ORDER_PG_PASSWORD"),
		os.Getenv("ORDER_PG_DB"),
	)

	db, err := sqlx.Connect("pgx", connStr)
	if err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(viper.GetInt("postgres.max_open_conns"))

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		panic(err)
	}

	return &Client{
		db: db,
	}
}
