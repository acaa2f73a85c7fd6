package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/iorderrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/ioutboxrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/itokenrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/iuserrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/memory"
	"github.com/kittiBank/order-manage-web/internal/dal/postgres"
	"github.com/kittiBank/order-manage-web/internal/dal/rabbitmq"
	rabbitmqrepo "github.com/kittiBank/order-manage-web/internal/dal/repositories/events/rabbitmq"
	orderrepo "github.com/kittiBank/order-manage-web/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/kittiBank/order-manage-web/internal/dal/repositories/outbox/postgres"
	tokenrepo "github.com/kittiBank/order-manage-web/internal/dal/repositories/token/postgres"
	userrepo "github.com/kittiBank/order-manage-web/internal/dal/repositories/user/postgres"
	"github.com/kittiBank/order-manage-web/internal/otel"
	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/service/services/ordersvc"
	httptransport "github.com/kittiBank/order-manage-web/internal/transport/http"
	outboxworker "github.com/kittiBank/order-manage-web/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	authSvc        *authsvc.AuthService
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	app := &App{}

	if viper.GetBool("tracing.enabled") {
		app.otelController = otel.MustInitOtel()
	}

	var (
		orderRepository  iorderrepo.IOrderRepository
		userRepository   iuserrepo.IUserRepository
		tokenRepository  itokenrepo.ITokenRepository
		outboxRepository ioutboxrepo.IOutboxRepository
	)

	switch viper.GetString("storage.driver") {
	case "postgres":
		app.postgresClient = postgres.MustNewClient()
		orderRepository = orderrepo.NewPostgresOrderRepository(app.postgresClient)
		userRepository = userrepo.NewPostgresUserRepository(app.postgresClient)
		tokenRepository = tokenrepo.NewPostgresTokenRepository(app.postgresClient)
		outboxRepository = outboxrepo.NewOutboxRepository(app.postgresClient)
	default:
		orderRepository = memory.NewSeededOrderRepository()
		userRepository = memory.NewUserRepository()
		tokenRepository = memory.NewTokenRepository()
		outboxRepository = memory.NewOutboxRepository()
	}

	app.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepository),
		ordersvc.WithOutboxRepository(outboxRepository),
	)

	secret := os.Getenv("ORDER_JWT_SECRET")
	if secret == "" {
		panic("ORDER_JWT_SECRET is not set")
	}

	accessTTL := authsvc.DefaultAccessTTL
	if minutes := viper.GetInt("auth.access_ttl_minutes"); minutes > 0 {
		accessTTL = time.Duration(minutes) * time.Minute
	}
	refreshTTL := authsvc.DefaultRefreshTTL
	if days := viper.GetInt("auth.refresh_ttl_days"); days > 0 {
		refreshTTL = time.Duration(days) * 24 * time.Hour
	}

	app.authSvc = authsvc.MustNewAuthService(
		authsvc.WithUserRepository(userRepository),
		authsvc.WithTokenRepository(tokenRepository),
		authsvc.WithSecret([]byte(secret)),
		authsvc.WithAccessTTL(accessTTL),
		authsvc.WithRefreshTTL(refreshTTL),
	)

	app.transport = httptransport.NewHTTPTransport(app.orderSvc, app.authSvc)
	app.transport.RegisterRoutes()

	if viper.GetBool("rabbitmq.enabled") {
		app.rabbitMqClient = rabbitmq.MustNewClient()
		publisher := rabbitmqrepo.NewRabbitMQPublisher(app.rabbitMqClient)
		app.outboxWorker = outboxworker.NewWorker(outboxRepository, publisher)
	}

	return app
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if a.outboxWorker != nil {
		go func() {
			slog.Info("Starting outbox worker")
			a.outboxWorker.Start(ctx)
		}()
	}

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application components.
// It shuts down components sequentially: outbox worker, HTTP server, RabbitMQ,
// PostgreSQL, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
		slog.Info("Outbox worker stopped gracefully")
	}

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		if err := a.postgresClient.Close(); err != nil {
			slog.Error("Database connection close error", "error", err)
		} else {
			slog.Info("Database connection closed gracefully")
		}
	}

	if a.otelController != nil {
		if err := a.otelController.Shutdown(); err != nil {
			slog.Error("Otel trace provider connection close error", "error", err)
		} else {
			slog.Info("Otel trace provider connection closed gracefully")
		}
	}

	slog.Info("Application shutdown complete")
}
