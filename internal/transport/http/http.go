package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nadeesha208/restosaas/internal/service/models/order"
	activeorders "github.com/nadeesha208/restosaas/internal/transport/http/active_orders"
	createorder "github.com/nadeesha208/restosaas/internal/transport/http/create_order"
	listorders "github.com/nadeesha208/restosaas/internal/transport/http/list_orders"
	"github.com/nadeesha208/restosaas/internal/transport/http/revenue"
	tableorders "github.com/nadeesha208/restosaas/internal/transport/http/table_orders"
	updatestatus "github.com/nadeesha208/restosaas/internal/transport/http/update_status"
	"github.com/nadeesha208/restosaas/pkg/http/middleware/trace"
	"github.com/nadeesha208/restosaas/pkg/logger"
	"github.com/spf13/viper"
)

type service interface {
	PlaceOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, target order.Status) (*order.Order, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	ActiveOrders(ctx context.Context, restaurantID int64) ([]order.Order, error)
	OrdersForTable(ctx context.Context, tableID int64) ([]order.Order, error)
	Revenue(ctx context.Context, restaurantID int64, status order.Status) (*order.Revenue, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.placeOrder)
			r.Get("/", h.listOrders)
			r.Get("/active", h.activeOrders)
			r.Patch("/{orderId}/status", h.updateStatus)
		})
		r.Get("/tables/{tableId}/orders", h.tableOrders)
		r.Get("/restaurants/{restaurantId}/revenue", h.revenue)
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	createorder.PlaceOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) activeOrders(w http.ResponseWriter, r *http.Request) {
	activeorders.ActiveOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) tableOrders(w http.ResponseWriter, r *http.Request) {
	tableorders.TableOrders(w, r, h.service)
}

func (h *HTTPTransport) revenue(w http.ResponseWriter, r *http.Request) {
	revenue.Revenue(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

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
