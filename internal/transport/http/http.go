package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/kittiBank/order-manage-web/internal/service/models/order"
	"github.com/kittiBank/order-manage-web/internal/service/models/user"
	"github.com/kittiBank/order-manage-web/internal/service/services/authsvc"
	"github.com/kittiBank/order-manage-web/internal/transport/http/middleware/authmw"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/createorder"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/deleteorder"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/getorder"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/getprofile"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/listorders"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/loginuser"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/logoutuser"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/refreshtoken"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/registeruser"
	"github.com/kittiBank/order-manage-web/internal/transport/http/v1/updateorder"
	"github.com/kittiBank/order-manage-web/pkg/http/middleware/trace"
	"github.com/kittiBank/order-manage-web/pkg/logger"
)

type orderService interface {
	List(ctx context.Context, q order.Query) (*order.Page, error)
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
	Get(ctx context.Context, id string) (*order.Order, error)
	Update(ctx context.Context, id string, req order.UpdateRequest) (*order.Order, error)
	Delete(ctx context.Context, id string) error
}

type authService interface {
	Register(ctx context.Context, req authsvc.RegisterRequest) (*user.User, error)
	Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*user.User, error)
	VerifyAccessToken(token string) (*authsvc.Claims, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	orderSvc orderService
	authSvc  authService
}

func NewHTTPTransport(orderSvc orderService, authSvc authService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		orderSvc: orderSvc,
		authSvc:  authSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler exposes the route tree for tests.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	requireAuth := authmw.NewAuthMiddleware(h.authSvc)

	h.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.registerUser)
			r.Post("/login", h.loginUser)
			r.Post("/refresh", h.refreshToken)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", h.logoutUser)
				r.Get("/profile", h.getProfile)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}", h.updateOrder)
			r.Delete("/{id}", h.deleteOrder)
		})
	})
}

func (h *HTTPTransport) registerUser(w http.ResponseWriter, r *http.Request) {
	registeruser.RegisterUser(w, r, h.authSvc)
}

func (h *HTTPTransport) loginUser(w http.ResponseWriter, r *http.Request) {
	loginuser.LoginUser(w, r, h.authSvc)
}

func (h *HTTPTransport) refreshToken(w http.ResponseWriter, r *http.Request) {
	refreshtoken.RefreshToken(w, r, h.authSvc)
}

func (h *HTTPTransport) logoutUser(w http.ResponseWriter, r *http.Request) {
	logoutuser.LogoutUser(w, r, h.authSvc)
}

func (h *HTTPTransport) getProfile(w http.ResponseWriter, r *http.Request) {
	getprofile.GetProfile(w, r, h.authSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.orderSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(recoverer)

	if viper.GetBool("tracing.enabled") {
		router.Use(trace.NewTraceMiddleware)
	}

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
